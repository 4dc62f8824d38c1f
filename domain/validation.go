package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPhoneLength = 11
	OTPCodeLength  = 4
)

// ValidatePhone enforces the minimum phone length; no stronger check is applied.
func ValidatePhone(phone string, minLength int) error {
	if utf8.RuneCountInString(strings.TrimSpace(phone)) < minLength {
		return &FieldError{Field: "phone", Err: ErrPhoneTooShort}
	}
	return nil
}

// ValidateOTPCode requires exactly length ASCII digits
func ValidateOTPCode(code string, length int) error {
	if len(code) != length || !allDigits(code) {
		return &FieldError{Field: "code", Err: ErrInvalidCode}
	}
	return nil
}

// ValidNationalCode reports whether code is a well-formed Iranian national ID.
func ValidNationalCode(code string) bool {
	if len(code) != 10 || !allDigits(code) {
		return false
	}
	if strings.Count(code, code[:1]) == 10 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(code[i]-'0') * (10 - i)
	}
	check := int(code[9] - '0')
	r := sum % 11
	if r < 2 {
		return check == r
	}
	return check == 11-r
}

// ValidateAddress checks the fields required to ship an order
func ValidateAddress(a Address, minPhoneLength int) error {
	required := []struct {
		field string
		value string
	}{
		{"receiverName", a.ReceiverName},
		{"province", a.Province},
		{"city", a.City},
		{"address", a.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &FieldError{Field: r.field, Err: ErrMissingField}
		}
	}
	if err := ValidatePhone(a.Phone, minPhoneLength); err != nil {
		return err
	}
	if len(a.PostalCode) != 10 || !allDigits(a.PostalCode) {
		return &FieldError{Field: "postalCode", Err: ErrInvalidPostalCode}
	}
	return nil
}

// ValidateWholesaleApplication checks the application form before submission
func ValidateWholesaleApplication(app WholesaleApplication) error {
	if !ValidNationalCode(app.NationalCode) {
		return &FieldError{Field: "nationalCode", Err: ErrInvalidNationalCode}
	}
	required := []struct {
		field string
		value string
	}{
		{"businessName", app.BusinessName},
		{"licenseNumber", app.LicenseNumber},
		{"province", app.Province},
		{"city", app.City},
		{"address", app.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &FieldError{Field: r.field, Err: ErrMissingField}
		}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
