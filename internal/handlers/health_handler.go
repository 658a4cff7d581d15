package handlers

import (
	"time"

	"talenthub/internal/database"
	"talenthub/internal/dto"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	db     *gorm.DB
	events Pinger
}

// NewHealthHandler creates a HealthHandler. events may be nil when the
// broker is not configured.
func NewHealthHandler(db *gorm.DB, events Pinger) *HealthHandler {
	return &HealthHandler{db: db, events: events}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "ok",
		Events:    "disabled",
	}
	if err := database.Ping(h.db); err != nil {
		resp.Status = "degraded"
		resp.Database = "unhealthy: " + err.Error()
	}
	if h.events != nil {
		resp.Events = "ok"
		if err := h.events.Ping(); err != nil {
			resp.Events = "unhealthy: " + err.Error()
		}
	}

	code := fiber.StatusOK
	if resp.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}
