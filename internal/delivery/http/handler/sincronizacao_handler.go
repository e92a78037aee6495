package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

type SincronizacaoHandler struct {
	usecase usecase.SincronizacaoUsecase
	logger  *zap.Logger
}

func NewSincronizacaoHandler(usecase usecase.SincronizacaoUsecase, logger *zap.Logger) *SincronizacaoHandler {
	return &SincronizacaoHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Sincronizar godoc
// @Summary Reconcile local records against remote systems
// @Description Removes signature records absent at Autentique and arquivo rows absent in the blob store
// @Tags admin
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /admin/sincronizar-documentos [post]
func (h *SincronizacaoHandler) Sincronizar(c *fiber.Ctx) error {
	resultado, err := h.usecase.Sincronizar(c.UserContext())
	if err != nil {
		h.logger.Error("Synchronization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(resultado, "Synchronization completed"))
}
