package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/database"
)

type arquivoRepository struct {
	db *gorm.DB
}

func NewArquivoRepository(database *database.Database) repository.ArquivoRepository {
	return &arquivoRepository{db: database.DB}
}

func (r *arquivoRepository) Create(ctx context.Context, arquivo *entity.Arquivo) error {
	if err := r.db.WithContext(ctx).Create(arquivo).Error; err != nil {
		return fmt.Errorf("failed to create arquivo %s: %w", arquivo.PublicID, err)
	}
	return nil
}

func (r *arquivoRepository) ListByProcesso(ctx context.Context, processoID uint) ([]entity.Arquivo, error) {
	var arquivos []entity.Arquivo
	err := r.db.WithContext(ctx).
		Where("processo_id = ?", processoID).
		Order("id").
		Find(&arquivos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list arquivos for processo %d: %w", processoID, err)
	}
	return arquivos, nil
}

func (r *arquivoRepository) ListAll(ctx context.Context) ([]entity.Arquivo, error) {
	var arquivos []entity.Arquivo
	if err := r.db.WithContext(ctx).Order("id").Find(&arquivos).Error; err != nil {
		return nil, fmt.Errorf("failed to list arquivos: %w", err)
	}
	return arquivos, nil
}

func (r *arquivoRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Arquivo{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete arquivo %d: %w", id, err)
	}
	return nil
}

func (r *arquivoRepository) DeleteByPublicID(ctx context.Context, publicID string) error {
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&entity.Arquivo{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete arquivo %s: %w", publicID, err)
	}
	return nil
}
