package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

type AgrupamentoHandler struct {
	verificacao usecase.VerificacaoUsecase
	agrupamento usecase.AgrupamentoUsecase
	logger      *zap.Logger
}

func NewAgrupamentoHandler(
	verificacao usecase.VerificacaoUsecase,
	agrupamento usecase.AgrupamentoUsecase,
	logger *zap.Logger,
) *AgrupamentoHandler {
	return &AgrupamentoHandler{
		verificacao: verificacao,
		agrupamento: agrupamento,
		logger:      logger,
	}
}

// Verificar godoc
// @Summary Verify the document checklist of a processo
// @Description Reports which of the seven required documents are present. Read only.
// @Tags agrupamento
// @Produce json
// @Param processo_id query int true "Processo id"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/agrupamento/verificar [get]
func (h *AgrupamentoHandler) Verificar(c *fiber.Ctx) error {
	processoID, err := strconv.ParseUint(c.Query("processo_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "processo_id is required"),
		)
	}

	resultado, err := h.verificacao.VerificarArquivos(c.UserContext(), uint(processoID))
	if err != nil {
		if errors.Is(err, usecase.ErrNenhumArquivo) {
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to verify checklist", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(resultado, "Checklist verified"))
}

// Mesclar godoc
// @Summary Merge the required documents into the final package
// @Description Concatenates the seven documents in the fixed business order, stores the result and removes the individual sources
// @Tags agrupamento
// @Produce json
// @Param processo_id query int true "Processo id"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/agrupamento/mesclar [post]
func (h *AgrupamentoHandler) Mesclar(c *fiber.Ctx) error {
	processoID, err := strconv.ParseUint(c.Query("processo_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "processo_id is required"),
		)
	}

	resultado, err := h.agrupamento.MesclarDocumentos(c.UserContext(), uint(processoID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNenhumArquivo):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		case errors.Is(err, usecase.ErrContratoNaoEncontrado),
			errors.Is(err, usecase.ErrArquivoObrigatorioAusente):
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		case errors.Is(err, usecase.ErrMesclagemEmAndamento):
			return c.Status(fiber.StatusConflict).JSON(
				entity.NewErrorResponse("CONFLICT", err.Error()),
			)
		}
		h.logger.Error("Failed to merge documents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(resultado, "Documents merged successfully"))
}
