package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validStoreCreate() StoreCreate {
	return StoreCreate{
		Name:          "Main Outlet",
		ContactName:   "Rahim Uddin",
		ContactNumber: "01712345678",
		Address:       "House 123, Road 4, Uttara, Dhaka-1230, Dhaka",
		CityName:      "Dhaka",
	}
}

func TestStoreCreate_Validate(t *testing.T) {
	assert.NoError(t, validStoreCreate().Validate())
}

func TestStoreCreate_Validate_Violations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StoreCreate)
		wantErr error
	}{
		{"short name", func(s *StoreCreate) { s.Name = "ab" }, ErrInvalidStoreName},
		{"long name", func(s *StoreCreate) { s.Name = strings.Repeat("x", 51) }, ErrInvalidStoreName},
		{"short contact name", func(s *StoreCreate) { s.ContactName = "ab" }, ErrInvalidContactName},
		{"short phone", func(s *StoreCreate) { s.ContactNumber = "0171234" }, ErrInvalidContactNumber},
		{"non-digit phone", func(s *StoreCreate) { s.ContactNumber = "0171234567a" }, ErrInvalidContactNumber},
		{"bad secondary phone", func(s *StoreCreate) { s.SecondaryContact = "123" }, ErrInvalidContactNumber},
		{"bad otp phone", func(s *StoreCreate) { s.OTPNumber = "abc" }, ErrInvalidContactNumber},
		{"short address", func(s *StoreCreate) { s.Address = "Dhaka" }, ErrInvalidAddress},
		{"long address", func(s *StoreCreate) { s.Address = strings.Repeat("a", 121) }, ErrInvalidAddress},
		{"missing city", func(s *StoreCreate) { s.CityName = "" }, ErrMissingCityName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validStoreCreate()
			tt.mutate(&in)
			assert.ErrorIs(t, in.Validate(), tt.wantErr)
		})
	}
}

func TestStoreCreate_OptionalPhonesAccepted(t *testing.T) {
	in := validStoreCreate()
	in.SecondaryContact = "01898765432"
	in.OTPNumber = "01911111111"

	assert.NoError(t, in.Validate())
}
