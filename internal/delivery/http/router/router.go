package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/delivery/http/handler"
)

type Router struct {
	app                  *fiber.App
	config               *config.Config
	processoHandler      *handler.ProcessoHandler
	arquivoHandler       *handler.ArquivoHandler
	agrupamentoHandler   *handler.AgrupamentoHandler
	assinaturaHandler    *handler.AssinaturaHandler
	webhookHandler       *handler.WebhookHandler
	sincronizacaoHandler *handler.SincronizacaoHandler
	healthHandler        *handler.HealthHandler
}

func NewRouter(
	cfg *config.Config,
	processoHandler *handler.ProcessoHandler,
	arquivoHandler *handler.ArquivoHandler,
	agrupamentoHandler *handler.AgrupamentoHandler,
	assinaturaHandler *handler.AssinaturaHandler,
	webhookHandler *handler.WebhookHandler,
	sincronizacaoHandler *handler.SincronizacaoHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
		BodyLimit:    50 * 1024 * 1024,
	})

	return &Router{
		app:                  app,
		config:               cfg,
		processoHandler:      processoHandler,
		arquivoHandler:       arquivoHandler,
		agrupamentoHandler:   agrupamentoHandler,
		assinaturaHandler:    assinaturaHandler,
		webhookHandler:       webhookHandler,
		sincronizacaoHandler: sincronizacaoHandler,
		healthHandler:        healthHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Autentique-Signature",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// Webhook route (at root level for external callbacks)
	r.app.Post("/webhook/autentique", r.webhookHandler.AutentiqueCallback)

	// Admin routes
	r.app.Post("/admin/sincronizar-documentos", r.sincronizacaoHandler.Sincronizar)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		processos := api.Group("/processos")
		{
			processos.Post("", r.processoHandler.Create)
			processos.Get("", r.processoHandler.List)
			processos.Get("/:numero_contrato", r.processoHandler.Get)
			processos.Patch("/:numero_contrato/status", r.processoHandler.UpdateStatus)
			processos.Delete("/:numero_contrato", r.processoHandler.Delete)
		}

		arquivos := api.Group("/arquivos")
		{
			arquivos.Post("/upload/:etapa", r.arquivoHandler.Upload)
			arquivos.Get("/:pasta", r.arquivoHandler.List)
			arquivos.Delete("", r.arquivoHandler.Delete)
		}

		agrupamento := api.Group("/agrupamento")
		{
			agrupamento.Get("/verificar", r.agrupamentoHandler.Verificar)
			agrupamento.Post("/mesclar", r.agrupamentoHandler.Mesclar)
		}

		assinaturas := api.Group("/assinaturas")
		{
			assinaturas.Post("/documento", r.assinaturaHandler.CreateDocument)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
