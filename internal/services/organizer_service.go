package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/grooviti/internal/helpers"
	"github.com/joshua-takyi/grooviti/internal/models"
)

var ErrUnknownPlan = errors.New("unknown plan or billing cycle")

type OrganizerService struct {
	users         models.UserRepo
	organizers    models.OrganizerRepo
	notifications models.NotificationRepo
	currency      string
}

func NewOrganizerService(users models.UserRepo, organizers models.OrganizerRepo, notifications models.NotificationRepo, currency string) *OrganizerService {
	return &OrganizerService{
		users:         users,
		organizers:    organizers,
		notifications: notifications,
		currency:      currency,
	}
}

// Register creates the organizer's account and a pending subscription order.
// The amount comes from the plan table; the client's figure is ignored.
func (s *OrganizerService) Register(ctx context.Context, req models.OrganizerRequest) (*models.OrganizerOrder, error) {
	req = req.Trimmed()
	if err := models.Validate.Struct(req); err != nil {
		return nil, err
	}
	price, ok := models.PlanPrice(req.PlanName, req.BillingCycle)
	if !ok {
		return nil, ErrUnknownPlan
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	account, err := s.users.CreateUser(ctx, &models.Account{
		User: models.User{
			Name:      req.Name,
			Email:     req.Email,
			Instagram: req.Instagram,
			Facebook:  req.Facebook,
			Twitter:   req.Twitter,
			LinkedIn:  req.LinkedIn,
			Website:   req.Website,
		},
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	order := &models.OrganizerOrder{
		UserID: account.ID,
		BookingOrder: models.BookingOrder{
			OrderID:  "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
			Amount:   price.Mul(minorUnits),
			Currency: s.currency,
		},
	}
	_, err = s.organizers.CreateOrganizer(ctx, &models.Organizer{
		UserID:       account.ID,
		Organization: req.Organization,
		Bio:          req.Bio,
		City:         req.City,
		State:        req.State,
		Phone:        req.Phone,
		Plan:         req.PlanName,
		BillingCycle: req.BillingCycle,
		OrderID:      order.OrderID,
		Amount:       order.Amount,
		Status:       models.BookingPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store organizer: %w", err)
	}

	_, err = s.notifications.AddNotification(ctx, &models.Notification{
		Title:   "Organizer registered",
		Message: fmt.Sprintf("%s is on the %s plan (%s), awaiting payment.", req.Organization, req.PlanName, req.BillingCycle),
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrganizerService) Organizer(ctx context.Context, userID string) (*models.Organizer, error) {
	return s.organizers.GetOrganizerByUser(ctx, userID)
}
