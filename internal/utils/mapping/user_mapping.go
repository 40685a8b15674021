package mapping

import (
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/models"
)

// ToModelUser converts a domain User to a model User. Empty optional fields become NULL.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		PhoneNumber:  NullableString(d.PhoneNumber),
		Address:      NullableString(d.Address),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		PhoneNumber:  StringValue(m.PhoneNumber),
		Address:      StringValue(m.Address),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// NullableString maps "" to nil.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue maps nil to "".
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
