package service

import (
	"fmt"
	"regexp"
	"strings"
)

// CustomerInfo is the checkout contact and shipping address block.
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries the aggregated checkout validation failure.
type ValidationError struct {
	MissingFields []string
	Message       string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Message
}

// checkoutFieldLabels pairs each required field with its user-facing name,
// in display order.
var checkoutFieldLabels = []struct {
	label string
	value func(info *CustomerInfo) string
}{
	{"Email", func(info *CustomerInfo) string { return info.Email }},
	{"First Name", func(info *CustomerInfo) string { return info.FirstName }},
	{"Last Name", func(info *CustomerInfo) string { return info.LastName }},
	{"Address", func(info *CustomerInfo) string { return info.Address }},
	{"City", func(info *CustomerInfo) string { return info.City }},
	{"State", func(info *CustomerInfo) string { return info.State }},
	{"Zip Code", func(info *CustomerInfo) string { return info.ZipCode }},
}

// ValidateCustomerInfo checks that every required field is present and
// the email is well formed. All missing fields are reported in one
// aggregated message; a malformed email gets its own message. A nil
// return means the submission may proceed.
func ValidateCustomerInfo(info *CustomerInfo) *ValidationError {
	if info == nil {
		info = &CustomerInfo{}
	}

	missing := make([]string, 0)
	for _, field := range checkoutFieldLabels {
		if strings.TrimSpace(field.value(info)) == "" {
			missing = append(missing, field.label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			MissingFields: missing,
			Message:       fmt.Sprintf("Please fill in the following required fields: %s", strings.Join(missing, ", ")),
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		return &ValidationError{
			Message: "Please enter a valid email address",
		}
	}
	return nil
}
