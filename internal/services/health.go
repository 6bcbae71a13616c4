package services

import (
	"context"
	"time"

	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Store        string `json:"store"`
	ErrorMessage string `json:"error,omitempty"`
}

// HealthCheck reports "ok" when the document store answers a read.
func (s *Service) HealthCheck(ctx context.Context) HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthCheckResult{
		Status:    "ok",
		Store:     "ok",
		Timestamp: utils.Timestamp(s.now()),
	}

	var rec models.Record
	if err := s.Store.Read(ctx, models.DocPreferences, &rec); err != nil {
		result.Status = "unhealthy"
		result.Store = "unreachable"
		result.ErrorMessage = "document store read failed"
	}

	return result
}
