package models

import (
	"errors"
	"fmt"
)

// Store validation errors.
var (
	ErrInvalidStoreName     = errors.New("store name must be between 3 and 50 characters")
	ErrInvalidContactName   = errors.New("contact name must be between 3 and 50 characters")
	ErrInvalidContactNumber = errors.New("contact number must be a valid 11-digit phone number")
	ErrInvalidAddress       = errors.New("address must be between 15 and 120 characters")
	ErrMissingCityName      = errors.New("city name is required")
)

// Store is a merchant pickup store as returned by the API.
type Store struct {
	StoreID       int    `json:"id"`
	Name          string `json:"name"`
	ContactName   string `json:"contact_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	CityID        int    `json:"city_id"`
	ZoneID        int    `json:"zone_id"`
	AreaID        int    `json:"area_id"`
}

// StoreCreate is the input for registering a new pickup store. Location
// identifiers are resolved from CityName and the address, so callers
// work with names only.
type StoreCreate struct {
	// Name is the store's display name, 3 to 50 characters.
	Name string

	// ContactName is the pickup contact person, 3 to 50 characters.
	ContactName string

	// ContactNumber is an 11-digit Bangladeshi mobile number
	// (e.g. "01712345678").
	ContactNumber string

	// SecondaryContact is an optional fallback phone number.
	SecondaryContact string

	// OTPNumber optionally receives delivery confirmation codes.
	OTPNumber string

	// Address is the full pickup address, 15 to 120 characters, in the
	// form "[Area], [Details], [Zone], [District], [Division]".
	Address string

	// CityName is the coverage city, matched case-insensitively against
	// the courier's city list.
	CityName string
}

// Validate checks field lengths and phone number formats. It reports
// the first violation found.
func (s StoreCreate) Validate() error {
	if l := len(s.Name); l < 3 || l > 50 {
		return fmt.Errorf("%w (got %d)", ErrInvalidStoreName, l)
	}
	if l := len(s.ContactName); l < 3 || l > 50 {
		return fmt.Errorf("%w (got %d)", ErrInvalidContactName, l)
	}
	if !validatePhone(s.ContactNumber) {
		return fmt.Errorf("%w (got %q)", ErrInvalidContactNumber, s.ContactNumber)
	}
	if s.SecondaryContact != "" && !validatePhone(s.SecondaryContact) {
		return fmt.Errorf("%w (secondary, got %q)", ErrInvalidContactNumber, s.SecondaryContact)
	}
	if s.OTPNumber != "" && !validatePhone(s.OTPNumber) {
		return fmt.Errorf("%w (otp, got %q)", ErrInvalidContactNumber, s.OTPNumber)
	}
	if l := len(s.Address); l < 15 || l > 120 {
		return fmt.Errorf("%w (got %d)", ErrInvalidAddress, l)
	}
	if s.CityName == "" {
		return ErrMissingCityName
	}
	return nil
}

// validatePhone accepts exactly 11 digits, the local mobile format.
func validatePhone(number string) bool {
	if len(number) != 11 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
