package domain

import "time"

// User is a credential store row. Rows are append-only: an administrative
// add writes one, an administrative delete removes the first match by
// username. The store does not enforce username uniqueness; lookup takes
// the oldest matching row.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
