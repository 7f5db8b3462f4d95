package api

import (
	"github.com/yerzhan/acecards/internal/services"
)

// Server wires the HTTP adapter to the service layer. The chat front-end is
// the expected caller; it owns all user-facing messaging.
type Server struct {
	CatalogService services.CatalogService
	ReviewService  services.ReviewService
	StatsService   services.StatsService
}
