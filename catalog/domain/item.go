package domain

import "time"

// Item is one catalog entry.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch is a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string
	Price       *float64
	Description *string
	ImageURL    *string
}

// Apply returns a copy of i with p applied and UpdatedAt set to now.
func (i Item) Apply(p ItemPatch, now time.Time) Item {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.ImageURL != nil {
		i.ImageURL = *p.ImageURL
	}
	i.UpdatedAt = now
	return i
}
