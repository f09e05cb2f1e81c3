package models

import "time"

// Product event types.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent is published after a product write has been committed.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productId"`
	Slug       string    `json:"slug,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
