package service

import (
	"strings"
	"testing"
)

func validCustomer() CustomerInfo {
	return CustomerInfo{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "123 Main St",
		City:      "San Angelo",
		State:     "TX",
		ZipCode:   "76901",
	}
}

func TestValidateCustomerInfoPasses(t *testing.T) {
	info := validCustomer()
	if err := ValidateCustomerInfo(&info); err != nil {
		t.Fatalf("valid customer must pass, got %v", err)
	}
}

func TestValidateCustomerInfoAggregatesMissingFields(t *testing.T) {
	info := validCustomer()
	info.Email = ""
	info.City = "  "
	info.ZipCode = ""

	err := ValidateCustomerInfo(&info)
	if err == nil {
		t.Fatalf("missing fields must fail validation")
	}
	if len(err.MissingFields) != 3 {
		t.Fatalf("want 3 missing fields got %v", err.MissingFields)
	}
	for _, field := range []string{"Email", "City", "Zip Code"} {
		if !strings.Contains(err.Message, field) {
			t.Fatalf("aggregated message must name %q, got %q", field, err.Message)
		}
	}
}

func TestValidateCustomerInfoAllMissing(t *testing.T) {
	err := ValidateCustomerInfo(&CustomerInfo{})
	if err == nil {
		t.Fatalf("empty customer must fail validation")
	}
	if len(err.MissingFields) != 7 {
		t.Fatalf("want all 7 fields reported got %v", err.MissingFields)
	}
}

func TestValidateCustomerInfoEmailPattern(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"a@b.co", true},
		{"jane@example", false},
		{"jane example@site.com", false},
		{"@example.com", false},
		{"jane@", false},
	}
	for _, tc := range cases {
		info := validCustomer()
		info.Email = tc.email
		err := ValidateCustomerInfo(&info)
		if tc.valid && err != nil {
			t.Fatalf("email %q should pass, got %v", tc.email, err)
		}
		if !tc.valid {
			if err == nil {
				t.Fatalf("email %q should fail", tc.email)
			}
			if len(err.MissingFields) != 0 {
				t.Fatalf("bad email is not a missing field, got %v", err.MissingFields)
			}
		}
	}
}
