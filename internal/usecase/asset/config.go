package asset

import "time"

const (
	DefaultUploadURLTTL = 10 * time.Minute

	DefaultListLimit = 20
	MaxListLimit     = 100
	// ListValidity bounds how long a rendered listing may be served from cache.
	ListValidity = 30 * time.Second

	// BacklogAge is how long an asset may stay pending before the backlog
	// command re-enqueues its verification.
	BacklogAge = time.Hour

	StatusAcknowledged = "acknowledged"
)
