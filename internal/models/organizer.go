package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Plan string

const (
	PlanBasic   Plan = "Basic"
	PlanPremium Plan = "Premium"
	PlanCustom  Plan = "Custom"
)

type BillingCycle string

const (
	Monthly   BillingCycle = "monthly"
	Quarterly BillingCycle = "quarterly"
	Annual    BillingCycle = "annual"
)

// planPrices is the organizer subscription price in rupees.
var planPrices = map[Plan]map[BillingCycle]int64{
	PlanBasic:   {Monthly: 49, Quarterly: 119, Annual: 299},
	PlanPremium: {Monthly: 499, Quarterly: 1199, Annual: 2999},
	PlanCustom:  {Monthly: 999, Quarterly: 2399, Annual: 5999},
}

// PlanPrice returns the price of plan billed every cycle. ok is false for an
// unknown plan or cycle.
func PlanPrice(plan Plan, cycle BillingCycle) (price decimal.Decimal, ok bool) {
	cycles, ok := planPrices[plan]
	if !ok {
		return decimal.Zero, false
	}
	p, ok := cycles[cycle]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(p), true
}

// OrganizerRequest is the organizer sign-up form. Fields are validated in
// declaration order, which is the order the form shows them.
type OrganizerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"contact_email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Phone           string `json:"phone" validate:"phone10"`
	Organization    string `json:"organization" validate:"required"`

	Bio       string `json:"bio,omitempty"`
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`

	PlanName     Plan            `json:"planName" validate:"oneof=Basic Premium Custom"`
	BillingCycle BillingCycle    `json:"billingCycle" validate:"oneof=monthly quarterly annual"`
	Amount       decimal.Decimal `json:"amount"`
}

// Trimmed strips surrounding whitespace from the text fields. Passwords are
// kept as typed.
func (r OrganizerRequest) Trimmed() OrganizerRequest {
	for _, f := range []*string{
		&r.Name, &r.Email, &r.Phone, &r.Organization, &r.Bio, &r.Website,
		&r.Instagram, &r.Facebook, &r.Twitter, &r.LinkedIn, &r.City, &r.State,
	} {
		*f = strings.TrimSpace(*f)
	}
	return r
}

// Organizer is a stored organizer registration.
type Organizer struct {
	ID           string          `json:"_id"`
	UserID       string          `json:"userId"`
	Organization string          `json:"organization"`
	Bio          string          `json:"bio,omitempty"`
	City         string          `json:"city,omitempty"`
	State        string          `json:"state,omitempty"`
	Phone        string          `json:"phone"`
	Plan         Plan            `json:"planName"`
	BillingCycle BillingCycle    `json:"billingCycle"`
	OrderID      string          `json:"order_id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OrganizerOrder is the pending subscription payment issued on sign-up.
type OrganizerOrder struct {
	UserID string `json:"userId"`
	BookingOrder
}

type OrganizerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrganizerOrder
}
