package entity

import "time"

// Store representa una tienda física.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
