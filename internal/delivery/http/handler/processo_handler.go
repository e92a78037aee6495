package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

type ProcessoHandler struct {
	usecase usecase.ProcessoUsecase
	logger  *zap.Logger
}

func NewProcessoHandler(usecase usecase.ProcessoUsecase, logger *zap.Logger) *ProcessoHandler {
	return &ProcessoHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type CreateProcessoRequest struct {
	Nome           string `json:"nome"`
	NumeroContrato string `json:"numero_contrato"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create godoc
// @Summary Create a processo
// @Description Registers a new transport-contract process by contract number
// @Tags processos
// @Accept json
// @Produce json
// @Param request body CreateProcessoRequest true "Processo data"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/processos [post]
func (h *ProcessoHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req CreateProcessoRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	processo, err := h.usecase.Criar(ctx, req.Nome, req.NumeroContrato)
	if err != nil {
		if errors.Is(err, usecase.ErrProcessoJaExiste) || errors.Is(err, usecase.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		}
		h.logger.Error("Failed to create processo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(processo, "Processo created successfully"),
	)
}

// List godoc
// @Summary List processos
// @Tags processos
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/processos [get]
func (h *ProcessoHandler) List(c *fiber.Ctx) error {
	processos, err := h.usecase.Listar(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list processos", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(processos, "Processos retrieved successfully"))
}

// Get godoc
// @Summary Get a processo by contract number
// @Tags processos
// @Produce json
// @Param numero_contrato path string true "Contract number"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/processos/{numero_contrato} [get]
func (h *ProcessoHandler) Get(c *fiber.Ctx) error {
	processo, err := h.usecase.BuscarPorNumeroContrato(c.UserContext(), c.Params("numero_contrato"))
	if err != nil {
		if errors.Is(err, usecase.ErrProcessoNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to get processo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(processo, "Processo retrieved successfully"))
}

// UpdateStatus godoc
// @Summary Update a processo stage
// @Tags processos
// @Accept json
// @Produce json
// @Param numero_contrato path string true "Contract number"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/processos/{numero_contrato}/status [patch]
func (h *ProcessoHandler) UpdateStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	processo, err := h.usecase.AtualizarStatus(ctx, c.Params("numero_contrato"), entity.StatusProcesso(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEtapaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		case errors.Is(err, usecase.ErrProcessoNaoEncontrado):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to update processo status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(processo, "Status updated successfully"))
}

// Delete godoc
// @Summary Remove a processo
// @Tags processos
// @Produce json
// @Param numero_contrato path string true "Contract number"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/processos/{numero_contrato} [delete]
func (h *ProcessoHandler) Delete(c *fiber.Ctx) error {
	numeroContrato := c.Params("numero_contrato")
	if err := h.usecase.Remover(c.UserContext(), numeroContrato); err != nil {
		if errors.Is(err, usecase.ErrProcessoNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to delete processo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"numero_contrato": numeroContrato,
	}, "Processo removed successfully"))
}
