package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/database"
)

type processoRepository struct {
	db *gorm.DB
}

func NewProcessoRepository(database *database.Database) repository.ProcessoRepository {
	return &processoRepository{db: database.DB}
}

func (r *processoRepository) Create(ctx context.Context, processo *entity.Processo) error {
	if err := r.db.WithContext(ctx).Create(processo).Error; err != nil {
		return fmt.Errorf("failed to create processo %s: %w", processo.NumeroContrato, err)
	}
	return nil
}

func (r *processoRepository) List(ctx context.Context) ([]entity.Processo, error) {
	var processos []entity.Processo
	if err := r.db.WithContext(ctx).Order("id").Find(&processos).Error; err != nil {
		return nil, fmt.Errorf("failed to list processos: %w", err)
	}
	return processos, nil
}

func (r *processoRepository) FindByID(ctx context.Context, id uint) (*entity.Processo, error) {
	var processo entity.Processo
	err := r.db.WithContext(ctx).First(&processo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find processo %d: %w", id, err)
	}
	return &processo, nil
}

func (r *processoRepository) FindByNumeroContrato(ctx context.Context, numeroContrato string) (*entity.Processo, error) {
	var processo entity.Processo
	err := r.db.WithContext(ctx).Where("numero_contrato = ?", numeroContrato).First(&processo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find processo %s: %w", numeroContrato, err)
	}
	return &processo, nil
}

func (r *processoRepository) UpdateStatus(ctx context.Context, id uint, status entity.StatusProcesso) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Processo{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update processo %d status: %w", id, err)
	}
	return nil
}

// Delete removes the processo and, via the FK cascade, its arquivos and
// documentos_assinatura.
func (r *processoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Processo{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete processo %d: %w", id, err)
	}
	return nil
}
