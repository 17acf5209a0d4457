package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/container"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/routes"
	"github.com/joshua-takyi/grooviti/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noWait() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	b := container.NewBackend(quietLogger(), container.BackendConfig{
		JWTSecret:   "secret",
		Currency:    "INR",
		CORSOrigins: []string{"http://localhost:8081"},
	})
	require.NoError(t, b.EventService.Seed(context.Background(), services.DefaultEvents(time.Now())))

	srv := httptest.NewServer(routes.SetupRoutes(b))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, opts ...api.Option) *api.Client {
	opts = append([]api.Option{api.WithLogger(quietLogger()), api.WithBackOff(noWait)}, opts...)
	return api.New(srv.URL+"/", opts...)
}

func findEvent(t *testing.T, events []models.Event, name string) models.Event {
	t.Helper()
	for _, e := range events {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("event %q not listed", name)
	return models.Event{}
}

func TestListAndGetEvent(t *testing.T) {
	ctx := context.Background()
	client := newClient(newBackend(t))

	events, err := client.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)

	neon := findEvent(t, events, "Neon Music Fest")
	assert.True(t, neon.Price.Equal(decimal.NewFromInt(999)))
	assert.Equal(t, 380, neon.AvailableTickets())

	got, err := client.GetEvent(ctx, neon.ID)
	require.NoError(t, err)
	assert.Equal(t, neon.ID, got.ID)
	assert.Equal(t, "Mumbai", got.Location.City)
}

func TestGetEventNotFound(t *testing.T) {
	client := newClient(newBackend(t))

	_, err := client.GetEvent(context.Background(), "000000000000000000000000")
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, "Event not found", api.Message(err))

	_, err = client.GetEvent(context.Background(), "  ")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestGetEventSuccessFalseIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":false,"message":"nope"}`)
	}))
	defer srv.Close()

	_, err := newClient(srv).GetEvent(context.Background(), "e1")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestGetEventKeepsOtherRejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		authErr bool
	}{
		{name: "throttled", status: http.StatusTooManyRequests, message: "Too many requests, slow down"},
		{name: "forbidden", status: http.StatusForbidden, message: "Forbidden", authErr: true},
		{name: "bad request", status: http.StatusBadRequest, message: "invalid event id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"success":false,"message":"`+tt.message+`"}`)
			}))
			defer srv.Close()

			_, err := newClient(srv, api.WithReadRetries(1)).GetEvent(context.Background(), "e1")
			require.Error(t, err)
			assert.NotErrorIs(t, err, api.ErrNotFound)
			assert.Equal(t, tt.message, api.Message(err))

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.authErr, errors.Is(err, api.ErrUnauthorized))

			if tt.status == http.StatusTooManyRequests {
				// retried once before giving up
				assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
			}
		})
	}
}

func TestAccountAndBooking(t *testing.T) {
	ctx := context.Background()
	client := newClient(newBackend(t))

	msg, err := client.Register(ctx, models.RegisterRequest{Name: "Asha", Email: "user@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)

	_, err = client.Register(ctx, models.RegisterRequest{Name: "Asha", Email: "user@example.com", Password: "hunter22"})
	assert.Equal(t, "User already exists", api.Message(err))

	_, err = client.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", api.Message(err))

	login, err := client.Login(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "user@example.com", login.Email)

	user, err := client.Profile(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	events, err := client.ListEvents(ctx)
	require.NoError(t, err)
	neon := findEvent(t, events, "Neon Music Fest")

	purchaser := models.Purchaser{FirstName: "Asha", LastName: "Rao", Email: "user@example.com", Phone: "9876543210"}
	order, err := client.CreateBooking(ctx, login.Token, models.NewBookingRequest(user.ID, neon, 2, purchaser))
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderID)
	assert.True(t, order.Amount.Equal(decimal.NewFromInt(199800)), order.Amount.String())
	assert.Equal(t, "INR", order.Currency)

	edm := findEvent(t, events, "Capital EDM Festival")
	_, err = client.CreateBooking(ctx, login.Token, models.NewBookingRequest(user.ID, edm, 1, purchaser))
	assert.Equal(t, "Sold out", api.Message(err))
}

func TestRegisterOrganizer(t *testing.T) {
	ctx := context.Background()
	client := newClient(newBackend(t))

	req := models.OrganizerRequest{
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
		Phone:           "9876543210",
		Organization:    "Neon Nights",
		PlanName:        models.PlanBasic,
		BillingCycle:    models.Quarterly,
		Amount:          decimal.NewFromInt(119),
	}
	order, err := client.RegisterOrganizer(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, order.UserID)
	assert.NotEmpty(t, order.OrderID)
	assert.True(t, order.Amount.Equal(decimal.NewFromInt(11900)), order.Amount.String())

	_, err = client.RegisterOrganizer(ctx, req)
	assert.Equal(t, "User already exists", api.Message(err))

	req.Email, req.Phone = "other@example.com", "123"
	_, err = client.RegisterOrganizer(ctx, req)
	assert.Equal(t, "Valid 10-digit phone number required.", api.Message(err))

	_, err = client.Login(ctx, "asha@example.com", "hunter22")
	assert.NoError(t, err)
}

func TestRegisterOrganizerIsNotRetried(t *testing.T) {
	srv, hits := flaky(1, `{"success":true,"userId":"u1","order_id":"o_1","amount":4900}`)
	defer srv.Close()

	_, err := newClient(srv, api.WithReadRetries(3)).RegisterOrganizer(context.Background(), models.OrganizerRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestProfileRejectsBadToken(t *testing.T) {
	client := newClient(newBackend(t))

	_, err := client.Profile(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = client.Profile(context.Background(), "")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestCreateBookingWithoutTokenNeverCalls(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	_, err := newClient(srv).CreateBooking(context.Background(), "", models.BookingRequest{})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func flaky(failures int32, body string) (*httptest.Server, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		if n <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"success":false,"message":"warming up"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	return srv, &hits
}

func TestReadsRetryTransientFailures(t *testing.T) {
	srv, hits := flaky(2, `{"success":true,"data":[{"_id":"e1","name":"Neon","price":100}]}`)
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := api.NewMetrics(reg)
	client := newClient(srv, api.WithMetrics(metrics), api.WithReadRetries(3))

	events, err := client.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))

	// one series for the rejected attempts, one for the success
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "grooviti_api_client_requests_total"))
}

func TestReadsGiveUpAfterBoundedRetries(t *testing.T) {
	srv, hits := flaky(100, `{}`)
	defer srv.Close()

	_, err := newClient(srv, api.WithReadRetries(2)).ListNotifications(context.Background())
	require.Error(t, err)
	assert.Equal(t, "warming up", api.Message(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func TestCreateBookingIsNotRetried(t *testing.T) {
	srv, hits := flaky(1, `{"success":true,"order_id":"o_1","amount":500,"currency":"INR"}`)
	defer srv.Close()

	_, err := newClient(srv).CreateBooking(context.Background(), "token", models.BookingRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestCreateBookingRequiresOrderID(t *testing.T) {
	srv, _ := flaky(0, `{"success":true,"amount":500}`)
	defer srv.Close()

	_, err := newClient(srv).CreateBooking(context.Background(), "token", models.BookingRequest{})
	require.Error(t, err)
}

func TestMessageFallbacks(t *testing.T) {
	assert.Equal(t, "The request timed out. Please try again.", api.Message(context.DeadlineExceeded))
	assert.Equal(t, "Something went wrong. Please try again later.", api.Message(errors.New("boom")))
}
