package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

const signatureHeader = "X-Autentique-Signature"

type WebhookHandler struct {
	config  *config.Config
	usecase usecase.WebhookUsecase
	logger  *zap.Logger
}

func NewWebhookHandler(cfg *config.Config, usecase usecase.WebhookUsecase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		config:  cfg,
		usecase: usecase,
		logger:  logger,
	}
}

// AutentiqueCallback godoc
// @Summary Autentique webhook callback
// @Description Receives signature events. The HMAC-SHA256 of the raw body must match the X-Autentique-Signature header.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 401 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /webhook/autentique [post]
func (h *WebhookHandler) AutentiqueCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// A service without a secret must never accept callbacks.
	if h.config.Webhook.Secret == "" {
		h.logger.Error("Webhook secret not configured, rejecting callback")
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Webhook secret not configured"),
		)
	}

	// Authenticate over the raw bytes, before any parsing.
	body := c.Body()
	if !h.validSignature(body, c.Get(signatureHeader)) {
		h.logger.Warn("Webhook signature mismatch",
			zap.String("remote_ip", c.IP()),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Invalid webhook signature"),
		)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Error("Failed to parse webhook payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid webhook payload"),
		)
	}

	// Processing failures are logged but still acknowledged: the provider
	// retries nothing useful and duplicates are handled downstream.
	if err := h.usecase.ProcessarEvento(ctx, payload); err != nil {
		h.logger.Error("Failed to process webhook event", zap.Error(err))
	}

	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"received": true,
	}, "Webhook received"))
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.config.Webhook.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
