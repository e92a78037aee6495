package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

type AssinaturaHandler struct {
	usecase usecase.AssinaturaUsecase
	logger  *zap.Logger
}

func NewAssinaturaHandler(usecase usecase.AssinaturaUsecase, logger *zap.Logger) *AssinaturaHandler {
	return &AssinaturaHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// CreateDocument godoc
// @Summary Submit a contract for signature
// @Description Sends the merged contract PDF to Autentique, returns one signing link per signer
// @Tags assinaturas
// @Accept json
// @Produce json
// @Param request body entity.DocumentoAssinaturaInput true "Signature request"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/assinaturas/documento [post]
func (h *AssinaturaHandler) CreateDocument(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var input entity.DocumentoAssinaturaInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	resultado, err := h.usecase.CriarDocumento(ctx, &input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		case errors.Is(err, usecase.ErrProcessoNaoEncontrado):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to create signature document",
			zap.String("nome_documento", input.NomeDocumento),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(resultado, "Signature document created successfully"),
	)
}
