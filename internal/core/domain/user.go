package domain

// User represents a bank customer in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	AuditFields
}
