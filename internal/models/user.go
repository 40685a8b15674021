package models

// User is a row of the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	Name         string  `db:"name"`
	PasswordHash string  `db:"password_hash"`
	PhoneNumber  *string `db:"phone_number"` // Nullable
	Address      *string `db:"address"`      // Nullable
	AuditFields
}
