package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
)

const (
	serviceName    = "Team Performance Dashboard API"
	serviceVersion = "1.0.0"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Version:   serviceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
