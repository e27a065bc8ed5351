// Package profilestore keeps one profile record per user id behind a small
// get/set interface with memory, Postgres and Redis backends.
package profilestore

import (
	"context"
	"errors"
	"strings"

	"accounthub/models"
)

var (
	// ErrNotFound is returned by Get when no record exists for the user id.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidUserID is returned for an empty user id.
	ErrInvalidUserID = errors.New("user id required")
)

// Store reads and fully replaces profile records.
type Store interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
	Set(ctx context.Context, userID string, p models.Profile) error
}

func normalizeID(userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", ErrInvalidUserID
	}
	return id, nil
}
