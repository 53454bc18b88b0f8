package booking

import (
	"regexp"
	"strings"

	"salonflow/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// South African numbers: +27 or 0 prefix, mobile ranges.
	phonePattern = regexp.MustCompile(`^(\+27|0)[6-8][0-9]{8}$`)
)

// CanProceed reports whether the session may advance from the given step.
func CanProceed(s *models.BookingSession, step int) bool {
	switch step {
	case models.StepServices:
		return len(s.SelectedServices) > 0
	case models.StepDateTime:
		return s.SelectedDate != "" && s.SelectedTime != ""
	case models.StepDetails:
		if s.CustomerDetails == nil {
			return false
		}
		return len(ValidateCustomerDetails(*s.CustomerDetails)) == 0
	case models.StepPayment:
		// Viewing the summary is always allowed; a payment method is only
		// required at submission.
		return true
	case models.StepConfirmation:
		// Terminal step.
		return false
	default:
		return false
	}
}

// ValidateCustomerDetails checks the step-3 fields and returns a field-keyed
// error map. An empty map means the details are valid. Validation failures
// are data, not Go errors.
func ValidateCustomerDetails(d models.CustomerDetails) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len(name) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}

	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}

	phone := strings.ReplaceAll(strings.TrimSpace(d.Phone), " ", "")
	switch {
	case phone == "":
		errs["phone"] = "Phone number is required"
	case !phonePattern.MatchString(phone):
		errs["phone"] = "Please enter a valid South African phone number (e.g., 0821234567)"
	}

	if len(d.Notes) > 500 {
		errs["notes"] = "Notes must be less than 500 characters"
	}

	return errs
}
