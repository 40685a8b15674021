package utils

import (
	"math/big"

	"github.com/google/uuid"
)

// AccountNumberLength is the number of digits in a customer facing account number.
const AccountNumberLength = 10

// NewAccountNumber derives a 10 digit account number from a random UUID:
// the leading digits of the UUID's 128-bit integer value.
func NewAccountNumber() string {
	return AccountNumberFromUUID(uuid.New())
}

// AccountNumberFromUUID returns the first AccountNumberLength decimal digits of id's integer value.
func AccountNumberFromUUID(id uuid.UUID) string {
	digits := new(big.Int).SetBytes(id[:]).String()
	for len(digits) < AccountNumberLength {
		digits += "0"
	}
	return digits[:AccountNumberLength]
}

// IsAccountNumber reports whether s has the shape of an account number.
func IsAccountNumber(s string) bool {
	if len(s) != AccountNumberLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
