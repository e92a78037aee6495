package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

type ArquivoHandler struct {
	usecase usecase.ArquivoUsecase
	logger  *zap.Logger
}

func NewArquivoHandler(usecase usecase.ArquivoUsecase, logger *zap.Logger) *ArquivoHandler {
	return &ArquivoHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Upload godoc
// @Summary Upload a PDF into a workflow folder
// @Description Stores a multipart PDF under the given folder. Optional form fields: nome (filename override), numero_contrato (links the file to a processo)
// @Tags arquivos
// @Accept multipart/form-data
// @Produce json
// @Param etapa path string true "Folder (raster, rntrc, contratos, comprovantes, cte, agrupamento, outros)"
// @Param file formData file true "PDF file"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/arquivos/upload/{etapa} [post]
func (h *ArquivoHandler) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "File is required"),
		)
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Failed to read file"),
		)
	}
	defer file.Close()

	conteudo, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Failed to read file"),
		)
	}

	nome := c.FormValue("nome")
	if nome == "" {
		nome = fileHeader.Filename
	}

	result, err := h.usecase.EnviarPDF(ctx, conteudo, c.Params("etapa"), nome, c.FormValue("numero_contrato"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEtapaInvalida),
			errors.Is(err, usecase.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		case errors.Is(err, usecase.ErrProcessoNaoEncontrado):
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", err.Error()),
			)
		}
		h.logger.Error("Failed to upload file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(result, "File uploaded successfully"),
	)
}

// List godoc
// @Summary List files in a workflow folder
// @Tags arquivos
// @Produce json
// @Param pasta path string true "Folder name"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/arquivos/{pasta} [get]
func (h *ArquivoHandler) List(c *fiber.Ctx) error {
	files, err := h.usecase.ListarPasta(c.UserContext(), c.Params("pasta"))
	if err != nil {
		if errors.Is(err, usecase.ErrEtapaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		}
		h.logger.Error("Failed to list folder", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(files, "Files retrieved successfully"))
}

// Delete godoc
// @Summary Remove a file from the blob store
// @Tags arquivos
// @Produce json
// @Param public_id query string true "Namespaced public_id"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/arquivos [delete]
func (h *ArquivoHandler) Delete(c *fiber.Ctx) error {
	publicID := c.Query("public_id")
	if publicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "public_id is required"),
		)
	}
	if err := h.usecase.RemoverArquivo(c.UserContext(), publicID); err != nil {
		if errors.Is(err, usecase.ErrEtapaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		}
		h.logger.Error("Failed to delete file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"public_id": publicID,
	}, "File removed successfully"))
}
