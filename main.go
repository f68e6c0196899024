package main

import (
	"legalease-api/core/logger"
	"legalease-api/core/server"
)

// @title LegalEase API
// @version 1.0
// @description Appointment reservation and settlement backend for the LegalEase consultation platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@legalease.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
