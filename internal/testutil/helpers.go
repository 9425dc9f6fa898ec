package testutil

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// MakeID generates a new UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name with the given prefix, so
// tests that create several accounts never collide on the name ordering.
func MakeAccountName(prefix string) string {
	return fmt.Sprintf("%s %04d", prefix, rand.Intn(10000))
}
