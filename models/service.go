package models

import "time"

// Service is a provider-owned listing that customers book.
// Rating and ReviewCount are aggregate fields maintained only by the
// review pipeline; no other code path writes them.
type Service struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64   `bson:"price" json:"price"`
	Category     string    `bson:"category" json:"category"`
	ThumbnailURL string    `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"`             // running mean, one decimal place
	ReviewCount  int       `bson:"review_count" json:"review_count"` // reviews folded into Rating
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
