// Package account backs the login, signup, logout, profile and notification
// screens. It is the only writer of the session.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/nav"
	"github.com/joshua-takyi/grooviti/internal/session"
)

var ErrMissingFields = errors.New("account: missing fields")

const missingFieldsMessage = "Please fill in all fields."

type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
}

// Result tells the screen what to show and where to go.
type Result struct {
	Route   nav.Route
	Message string
}

type Service struct {
	backend Backend
	session *session.Store
	logger  *slog.Logger
}

func NewService(backend Backend, store *session.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, session: store, logger: logger}
}

// Login stores the token together with the profile. When the profile cannot
// be fetched the user is kept as just the email.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Result{Message: missingFieldsMessage}, ErrMissingFields
	}

	login, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return Result{Message: api.Message(err)}, err
	}

	user, err := s.backend.Profile(ctx, login.Token)
	if err != nil {
		s.logger.Warn("profile unavailable after login", "error", err)
		shown := login.Email
		if shown == "" {
			shown = email
		}
		user = &models.User{Email: shown}
	}

	if err := s.session.Set(ctx, login.Token, user); err != nil {
		// the in-memory session is usable; only the durable copy is missing
		s.logger.Error("failed to persist session", "error", err)
	}
	return Result{Route: nav.Landing}, nil
}

func (s *Service) Signup(ctx context.Context, name, email, password string) (Result, error) {
	req := models.RegisterRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return Result{Message: missingFieldsMessage}, ErrMissingFields
	}

	if _, err := s.backend.Register(ctx, req); err != nil {
		return Result{Message: api.Message(err)}, err
	}
	return Result{Route: nav.Login, Message: "Please log in to continue"}, nil
}

func (s *Service) Logout(ctx context.Context) (Result, error) {
	if err := s.session.Logout(ctx); err != nil {
		return Result{Route: nav.Login}, fmt.Errorf("logout: %w", err)
	}
	return Result{Route: nav.Login}, nil
}

type ProfileView struct {
	Name       string
	Email      string
	ProfilePic string
	Links      map[string]string
	Followers  int
	Following  int
	Bookings   int
}

// LinkNames returns the keys of Links in alphabetical order.
func (v ProfileView) LinkNames() []string {
	names := make([]string, 0, len(v.Links))
	for name := range v.Links {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile refreshes the signed-in user. A rejected token ends the session.
func (s *Service) Profile(ctx context.Context) (ProfileView, Result, error) {
	if route := nav.Guard(s.session, nav.Profile); route != nav.Profile {
		return ProfileView{}, Result{Route: route}, session.ErrNoSession
	}

	user, err := s.backend.Profile(ctx, s.session.Token())
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		if lerr := s.session.Logout(ctx); lerr != nil {
			s.logger.Error("failed to clear session", "error", lerr)
		}
		return ProfileView{}, Result{Route: nav.Login, Message: api.Message(err)}, err
	case err != nil:
		// keep showing whatever we already had
		return profileView(s.session.User()), Result{Message: api.Message(err)}, err
	}

	s.session.SetUser(user)
	return profileView(user), Result{}, nil
}

func profileView(u *models.User) ProfileView {
	if u == nil {
		u = &models.User{}
	}
	v := ProfileView{
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Links:      map[string]string{},
		Followers:  u.Followers,
		Following:  u.Following,
		Bookings:   u.Bookings,
	}
	if v.Name == "" {
		v.Name = "Guest User"
	}
	for name, link := range map[string]string{
		"instagram": u.Instagram,
		"facebook":  u.Facebook,
		"twitter":   u.Twitter,
		"linkedin":  u.LinkedIn,
		"website":   u.Website,
	} {
		if link != "" {
			v.Links[name] = link
		}
	}
	return v
}

type NotificationsView struct {
	Items  []models.Notification
	Unread int
}

func (s *Service) Notifications(ctx context.Context) (NotificationsView, error) {
	items, err := s.backend.ListNotifications(ctx)
	if err != nil {
		return NotificationsView{}, err
	}
	v := NotificationsView{Items: items}
	for _, n := range items {
		if !n.IsRead {
			v.Unread++
		}
	}
	return v, nil
}
