package usecase

import (
	"context"
	"log/slog"

	"qaboard/src/core/ports"
)

// HealthService reports the health of the application and its storage.
type HealthService struct {
	db  ports.Repository
	log *slog.Logger
}

// NewHealthService creates a new HealthService.
func NewHealthService(db ports.Repository, log *slog.Logger) *HealthService {
	return &HealthService{
		db:  db,
		log: log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check pings every dependency. The overall status is "degraded" when any
// component is unhealthy. Error detail is logged, not returned.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			if s.log != nil {
				s.log.Warn("database health check failed", "err", err)
			}
			status.Status = "degraded"
			status.Components["database"] = ComponentHealth{
				Status:  "unhealthy",
				Message: "database unreachable",
			}
		} else {
			status.Components["database"] = ComponentHealth{Status: "healthy"}
		}
	}

	return status
}
