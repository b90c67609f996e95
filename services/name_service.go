package services

import (
	"fmt"
	"math/rand"
	"strings"
)

// NameGenerator produces a display name for users who sign in without one
// (anonymous provider). Injected so callers stay deterministic in tests.
type NameGenerator func() string

// RandomGuestName mirrors the anonymous naming scheme: User_ plus a random
// four-digit suffix.
func RandomGuestName() string {
	return fmt.Sprintf("User_%d", rand.Intn(10000))
}

// NameFromEmail derives a display name from the local part of an email
// address.
func NameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
