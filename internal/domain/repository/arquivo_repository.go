package repository

import (
	"context"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

// ArquivoRepository persists Arquivo rows.
type ArquivoRepository interface {
	Create(ctx context.Context, arquivo *entity.Arquivo) error
	ListByProcesso(ctx context.Context, processoID uint) ([]entity.Arquivo, error)
	ListAll(ctx context.Context) ([]entity.Arquivo, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByPublicID(ctx context.Context, publicID string) error
}
