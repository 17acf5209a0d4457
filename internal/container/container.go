package container

import (
	"log/slog"

	"github.com/dgraph-io/badger"
	"github.com/joshua-takyi/grooviti/internal/account"
	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/booking"
	"github.com/joshua-takyi/grooviti/internal/config"
	"github.com/joshua-takyi/grooviti/internal/events"
	"github.com/joshua-takyi/grooviti/internal/organizer"
	"github.com/joshua-takyi/grooviti/internal/payment"
	"github.com/joshua-takyi/grooviti/internal/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all client dependencies
type Container struct {
	Logger   *slog.Logger
	Config   *config.Config
	Registry *prometheus.Registry
	DB       *badger.DB

	Session  *session.Store
	API      *api.Client
	Payments *payment.Handoff
	Accounts *account.Service
}

// NewContainer wires the client. db may be nil, in which case the session
// lives only in memory.
func NewContainer(cfg *config.Config, logger *slog.Logger, db *badger.DB, checkout payment.Checkout) *Container {
	reg := prometheus.NewRegistry()

	var tokens session.TokenStore = &session.MemoryTokens{}
	if db != nil {
		tokens = session.NewBadgerTokens(db)
	}
	store := session.New(tokens, logger)

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
		api.WithReadRetries(cfg.ReadRetries),
		api.WithMetrics(api.NewMetrics(reg)),
	)

	payments := payment.New(checkout, payment.Config{
		Key:          cfg.PaymentKey,
		Secret:       cfg.PaymentSecret,
		Currency:     cfg.PaymentCurrency,
		MerchantName: cfg.MerchantName,
	}, logger)

	return &Container{
		Logger:   logger,
		Config:   cfg,
		Registry: reg,
		DB:       db,
		Session:  store,
		API:      client,
		Payments: payments,
		Accounts: account.NewService(client, store, logger),
	}
}

func (c *Container) Explorer() *events.Explorer {
	return events.NewExplorer(c.API, c.Logger)
}

func (c *Container) EventDetail() *events.Detail {
	return events.NewDetail(c.API, c.Logger)
}

// BookingFlow returns a fresh flow for one purchase screen.
func (c *Container) BookingFlow() *booking.Flow {
	return booking.New(booking.Deps{
		Events:   c.API,
		Orders:   c.API,
		Session:  c.Session,
		Payments: c.Payments,
		Logger:   c.Logger,
	})
}

func (c *Container) OrganizerFlow() *organizer.Flow {
	return organizer.New(organizer.Deps{
		Registrar: c.API,
		Payments:  c.Payments,
		Logger:    c.Logger,
	})
}
