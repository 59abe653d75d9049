package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a new collision-free identifier tagged with a short
// prefix naming the kind of record it identifies, e.g. "auction-<uuid>".
func GenerateID(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.New())
}
