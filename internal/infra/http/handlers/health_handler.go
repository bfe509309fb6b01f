package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	DB        *sql.DB
	RabbitMQ  *amqp091.Connection
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts a nil rabbitMQ when publishing is disabled.
func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Version:   version,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	deps := make(map[string]string)
	degraded := false

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = "unhealthy: " + err.Error()
			degraded = true
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
		degraded = true
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
			degraded = true
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	response := HealthResponse{
		Status:       "healthy",
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	status := http.StatusOK
	if degraded {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
