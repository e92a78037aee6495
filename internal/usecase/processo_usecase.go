package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
)

type ProcessoUsecase interface {
	Criar(ctx context.Context, nome, numeroContrato string) (*entity.Processo, error)
	Listar(ctx context.Context) ([]entity.Processo, error)
	BuscarPorNumeroContrato(ctx context.Context, numeroContrato string) (*entity.Processo, error)
	AtualizarStatus(ctx context.Context, numeroContrato string, status entity.StatusProcesso) (*entity.Processo, error)
	Remover(ctx context.Context, numeroContrato string) error
}

type processoUsecase struct {
	processoRepo repository.ProcessoRepository
	logger       *zap.Logger
}

func NewProcessoUsecase(processoRepo repository.ProcessoRepository, logger *zap.Logger) ProcessoUsecase {
	return &processoUsecase{
		processoRepo: processoRepo,
		logger:       logger,
	}
}

func (u *processoUsecase) Criar(ctx context.Context, nome, numeroContrato string) (*entity.Processo, error) {
	if nome == "" {
		return nil, fmt.Errorf("%w: nome is required", ErrEntradaInvalida)
	}
	if numeroContrato == "" {
		return nil, fmt.Errorf("%w: numero_contrato is required", ErrEntradaInvalida)
	}
	existente, err := u.processoRepo.FindByNumeroContrato(ctx, numeroContrato)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: %s", ErrProcessoJaExiste, numeroContrato)
	}

	processo := &entity.Processo{
		Nome:           nome,
		NumeroContrato: numeroContrato,
		Status:         entity.StatusAguardandoRasterMotorista,
	}
	if err := u.processoRepo.Create(ctx, processo); err != nil {
		return nil, err
	}
	u.logger.Info("Processo created",
		zap.Uint("id", processo.ID),
		zap.String("numero_contrato", numeroContrato),
	)
	return processo, nil
}

func (u *processoUsecase) Listar(ctx context.Context) ([]entity.Processo, error) {
	return u.processoRepo.List(ctx)
}

func (u *processoUsecase) BuscarPorNumeroContrato(ctx context.Context, numeroContrato string) (*entity.Processo, error) {
	processo, err := u.processoRepo.FindByNumeroContrato(ctx, numeroContrato)
	if err != nil {
		return nil, err
	}
	if processo == nil {
		return nil, fmt.Errorf("%w: numero_contrato %s", ErrProcessoNaoEncontrado, numeroContrato)
	}
	return processo, nil
}

func (u *processoUsecase) AtualizarStatus(ctx context.Context, numeroContrato string, status entity.StatusProcesso) (*entity.Processo, error) {
	if !statusValido(status) {
		return nil, fmt.Errorf("%w: status %s", ErrEtapaInvalida, status)
	}
	processo, err := u.BuscarPorNumeroContrato(ctx, numeroContrato)
	if err != nil {
		return nil, err
	}
	if err := u.processoRepo.UpdateStatus(ctx, processo.ID, status); err != nil {
		return nil, err
	}
	processo.Status = status
	u.logger.Info("Processo status updated",
		zap.Uint("id", processo.ID),
		zap.String("status", string(status)),
	)
	return processo, nil
}

func (u *processoUsecase) Remover(ctx context.Context, numeroContrato string) error {
	processo, err := u.BuscarPorNumeroContrato(ctx, numeroContrato)
	if err != nil {
		return err
	}
	if err := u.processoRepo.Delete(ctx, processo.ID); err != nil {
		return err
	}
	u.logger.Info("Processo removed",
		zap.Uint("id", processo.ID),
		zap.String("numero_contrato", numeroContrato),
	)
	return nil
}

func statusValido(status entity.StatusProcesso) bool {
	switch status {
	case entity.StatusAguardandoRasterMotorista,
		entity.StatusAguardandoRasterCaminhao,
		entity.StatusAguardandoAssinaturaContrato,
		entity.StatusAguardandoCTE,
		entity.StatusAguardandoManifesto,
		entity.StatusAguardandoRNTRC,
		entity.StatusAguardandoComprovante,
		entity.StatusFinalizado,
		entity.StatusRejeitado:
		return true
	}
	return false
}
