package pkg

import "github.com/google/uuid"

// GenerateSessionID returns a random id for a new game session.
func GenerateSessionID() string {
	return uuid.NewString()
}
