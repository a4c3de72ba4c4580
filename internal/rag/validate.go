package rag

import (
	"fmt"
	"net/mail"

	"email-rag/internal/models"
)

// ValidateEmail checks the inbound email's required fields. It returns a
// *ValidationError carrying every field-level violation found, or nil.
func ValidateEmail(email *models.Email) error {
	var violations []FieldViolation

	if email.Sender == "" {
		violations = append(violations, FieldViolation{Field: "sender", Reason: "required"})
	} else if !validAddress(email.Sender) {
		violations = append(violations, FieldViolation{Field: "sender", Reason: "malformed address"})
	}

	if len(email.Recipient) == 0 {
		violations = append(violations, FieldViolation{Field: "recipient", Reason: "at least one recipient required"})
	} else {
		violations = append(violations, checkAddressList("recipient", email.Recipient)...)
	}

	violations = append(violations, checkAddressList("cc", email.CC)...)
	violations = append(violations, checkAddressList("bcc", email.BCC)...)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func checkAddressList(field string, addrs []string) []FieldViolation {
	var violations []FieldViolation
	for i, addr := range addrs {
		if !validAddress(addr) {
			violations = append(violations, FieldViolation{
				Field:  fmt.Sprintf("%s[%d]", field, i),
				Reason: "malformed address",
			})
		}
	}
	return violations
}

func validAddress(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
