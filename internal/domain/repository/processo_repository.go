package repository

import (
	"context"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

// ProcessoRepository persists Processo rows. Lookup methods return
// (nil, nil) when no row matches so callers can branch on absence without
// error inspection.
type ProcessoRepository interface {
	Create(ctx context.Context, processo *entity.Processo) error
	List(ctx context.Context) ([]entity.Processo, error)
	FindByID(ctx context.Context, id uint) (*entity.Processo, error)
	FindByNumeroContrato(ctx context.Context, numeroContrato string) (*entity.Processo, error)
	UpdateStatus(ctx context.Context, id uint, status entity.StatusProcesso) error
	Delete(ctx context.Context, id uint) error
}
