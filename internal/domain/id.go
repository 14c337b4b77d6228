package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseID parses a caller-supplied identifier. An empty value is a
// validation error naming field; a malformed one is ErrInvalidReference.
func ParseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", ErrInvalidReference, field, raw)
	}
	return id, nil
}
