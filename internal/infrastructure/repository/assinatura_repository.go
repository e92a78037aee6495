package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/database"
)

type assinaturaRepository struct {
	db *gorm.DB
}

func NewAssinaturaRepository(database *database.Database) repository.AssinaturaRepository {
	return &assinaturaRepository{db: database.DB}
}

// CreateWithSignatarios persists the document and its signers in one
// transaction so a failed signer insert leaves nothing behind.
func (r *assinaturaRepository) CreateWithSignatarios(ctx context.Context, documento *entity.DocumentoAssinatura) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(documento).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create documento_assinatura %s: %w", documento.DocumentoIDAutentique, err)
	}
	return nil
}

func (r *assinaturaRepository) FindByDocumentoAutentique(ctx context.Context, documentoID string) (*entity.DocumentoAssinatura, error) {
	var documento entity.DocumentoAssinatura
	err := r.db.WithContext(ctx).
		Preload("Assinaturas").
		Where("documento_id_autentique = ?", documentoID).
		First(&documento).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find documento_assinatura %s: %w", documentoID, err)
	}
	return &documento, nil
}

// RegistrarAssinatura runs the full effect of one callback inside one
// transaction. The completion check runs unconditionally, so a redelivered
// callback can still close a documento whose signer write already landed.
func (r *assinaturaRepository) RegistrarAssinatura(ctx context.Context, documentoID, signatarioID uint, assinadoEm time.Time, statusProcesso entity.StatusProcesso) (bool, error) {
	concluido := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.AssinaturaSignatario{}).
			Where("id = ? AND status_assinatura = ?", signatarioID, entity.StatusSignatarioAguardando).
			Updates(map[string]interface{}{
				"status_assinatura": entity.StatusSignatarioAssinado,
				"data_assinatura":   assinadoEm,
			}).Error; err != nil {
			return err
		}

		var pendentes int64
		if err := tx.Model(&entity.AssinaturaSignatario{}).
			Where("documento_assinatura_id = ? AND status_assinatura <> ?", documentoID, entity.StatusSignatarioAssinado).
			Count(&pendentes).Error; err != nil {
			return err
		}
		if pendentes > 0 {
			return nil
		}

		// The status guard makes the close-and-advance run at most once
		// across concurrent or redelivered callbacks.
		res := tx.Model(&entity.DocumentoAssinatura{}).
			Where("id = ? AND status <> ?", documentoID, entity.StatusDocumentoAssinado).
			Update("status", entity.StatusDocumentoAssinado)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var documento entity.DocumentoAssinatura
		if err := tx.First(&documento, documentoID).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Processo{}).
			Where("id = ?", documento.ProcessoID).
			Update("status", statusProcesso).Error; err != nil {
			return err
		}
		concluido = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to register signature for documento %d: %w", documentoID, err)
	}
	return concluido, nil
}

func (r *assinaturaRepository) ListAll(ctx context.Context) ([]entity.DocumentoAssinatura, error) {
	var documentos []entity.DocumentoAssinatura
	if err := r.db.WithContext(ctx).Order("id").Find(&documentos).Error; err != nil {
		return nil, fmt.Errorf("failed to list documentos_assinatura: %w", err)
	}
	return documentos, nil
}

func (r *assinaturaRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.DocumentoAssinatura{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete documento_assinatura %d: %w", id, err)
	}
	return nil
}
