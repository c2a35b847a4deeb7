package types

import (
	"time"

	"github.com/google/uuid"
)

// PublicationStatus is always simulated: nothing leaves the process.
type PublicationStatus string

const PublicationSimulated PublicationStatus = "simulated"

// PublishRequest is the body of the publish stub.
type PublishRequest struct {
	Content   string     `json:"content"`
	Platforms []Platform `json:"platforms"`
	Title     string     `json:"title,omitempty"`
}

// Publication is a stubbed publish record kept in memory until it expires.
type Publication struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title,omitempty"`
	Content     string            `json:"content"`
	Platforms   []Platform        `json:"platforms"`
	Status      PublicationStatus `json:"status"`
	PublishedAt time.Time         `json:"published_at"`
	ExpiresAt   time.Time         `json:"expires_at"`
}
