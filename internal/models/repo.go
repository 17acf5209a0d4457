package models

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate = newValidator()

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var (
	ErrSoldOut    = errors.New("not enough tickets available")
	ErrEmailTaken = errors.New("email already in use")

	ErrOrganizerExists = errors.New("organizer already registered")
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json names so messages match the wire
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	return v
}

// mustRegister panics if the validation cannot be registered, like
// regexp.MustCompile.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("models: register validation " + tag + ": " + err.Error())
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts exactly ten digits.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// The repo interfaces back the dev backend.
// Lookups return nil, nil when nothing matches.
type EventRepo interface {
	ListEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	ReserveTickets(ctx context.Context, id string, quantity int) (*Event, error)
	ReleaseTickets(ctx context.Context, id string, quantity int) error
}

type UserRepo interface {
	CreateUser(ctx context.Context, account *Account) (*Account, error)
	GetUser(ctx context.Context, id string) (*Account, error)
	GetUserByEmail(ctx context.Context, email string) (*Account, error)
	IncrementBookings(ctx context.Context, id string) error
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]Booking, error)
}

type OrganizerRepo interface {
	CreateOrganizer(ctx context.Context, o *Organizer) (*Organizer, error)
	GetOrganizerByUser(ctx context.Context, userID string) (*Organizer, error)
}

type NotificationRepo interface {
	AddNotification(ctx context.Context, n *Notification) (*Notification, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
}
