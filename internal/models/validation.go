package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps "<field>.<tag>" to the text shown next to the form field.
var fieldMessages = map[string]string{
	"firstName.required":  "First name is required.",
	"lastName.required":   "Last name is required.",
	"email.required":      "Email is required.",
	"email.contact_email": "Valid email is required.",
	"phone.required":      "Phone number is required.",
	"phone.phone10":       "Valid 10-digit phone number required.",
	"name.required":       "Name is required.",
	"password.required":   "Password is required.",
	"password.min":        "Password must be at least 6 characters.",
	"eventId.required":    "Event is required.",
	"quantity.gte":        "Select at least one ticket.",
	"items.required":      "Select at least one ticket.",
	"totalTickets.gte":    "Total tickets cannot be negative.",
	"ticketsSold.gte":     "Tickets sold cannot be negative.",

	"confirmPassword.eqfield": "Passwords do not match.",
	"organization.required":   "Organization name is required.",
	"planName.oneof":          "Select a valid plan.",
	"billingCycle.oneof":      "Select a valid billing cycle.",
}

// Explain returns the field and message of the first failed rule in err.
// ok is false when err did not come from Validate.
func Explain(err error) (field, message string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	fe := verrs[0]
	if msg, found := fieldMessages[fe.Field()+"."+fe.Tag()]; found {
		return fe.Field(), msg, true
	}
	return fe.Field(), "Invalid " + fe.Field() + ".", true
}
