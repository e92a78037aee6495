package main

import (
	"go.uber.org/fx"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	deliveryhttp "github.com/deViniciusPedroza/automacao-contratos/internal/delivery/http"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/database"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/logger"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/pdf"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/redis"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/signing"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
	"github.com/deViniciusPedroza/automacao-contratos/internal/server"
	"github.com/deViniciusPedroza/automacao-contratos/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		storage.Module,
		signing.Module,
		pdf.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
