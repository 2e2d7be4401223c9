package domain

import "time"

// Store is a supermarket branch managed by a seller account.
type Store struct {
	ID        int64
	Name      string
	Location  string
	ManagerID int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
