package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"prepvio_backend/internal/models"
)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-ticket-status", validateTicketStatus)
	mustRegister("is-interview-status", validateInterviewStatus)
	mustRegister("is-priority", validatePriority)
}

func validateTicketStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is for 'required' to decide
	}
	for _, s := range models.ValidTicketStatuses {
		if value == string(s) {
			return true
		}
	}
	return false
}

func validateInterviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, s := range models.ValidInterviewStatuses {
		if value == string(s) {
			return true
		}
	}
	return false
}

func validatePriority(fl validator.FieldLevel) bool {
	switch models.TicketPriority(fl.Field().String()) {
	case "", models.TicketPriorityLow, models.TicketPriorityMedium, models.TicketPriorityHigh:
		return true
	}
	return false
}
