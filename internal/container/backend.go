package container

import (
	"log/slog"
	"time"

	"github.com/joshua-takyi/grooviti/internal/helpers"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/services"
	"github.com/prometheus/client_golang/prometheus"
)

// Backend holds the dev backend's dependencies.
type Backend struct {
	Logger      *slog.Logger
	Registry    *prometheus.Registry
	CORSOrigins []string
	Repo        *models.MemoryRepo

	UserService         *services.UserService
	EventService        *services.EventService
	BookingService      *services.BookingService
	OrganizerService    *services.OrganizerService
	NotificationService *services.NotificationService
}

// DefaultCORSOrigin is the Expo web dev server the app is served from.
const DefaultCORSOrigin = "http://localhost:8081"

type BackendConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	Currency    string
	CORSOrigins []string
}

func NewBackend(logger *slog.Logger, cfg BackendConfig) *Backend {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if len(cfg.CORSOrigins) == 0 {
		// cors.New panics on an empty origin list
		cfg.CORSOrigins = []string{DefaultCORSOrigin}
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	repo := models.MemoryNewRepo()
	tokens := helpers.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	return &Backend{
		Logger:              logger,
		Registry:            prometheus.NewRegistry(),
		CORSOrigins:         cfg.CORSOrigins,
		Repo:                repo,
		UserService:         services.NewUserService(repo, tokens),
		EventService:        services.NewEventService(repo),
		BookingService:      services.NewBookingService(repo, repo, repo, repo, cfg.Currency),
		OrganizerService:    services.NewOrganizerService(repo, repo, repo, cfg.Currency),
		NotificationService: services.NewNotificationService(repo),
	}
}
