package model

import "github.com/google/uuid"

// GenerateID creates a new time-ordered (v7) UUID string.
func GenerateID() string {
	return uuid.Must(uuid.NewV7()).String()
}
