package domain

import "time"

// Entry is a submitted intake record. Entries are append-only and never
// mutated or deleted by the service.
type Entry struct {
	ID          string
	Timestamp   time.Time
	Name        string
	Email       string
	Phone       string
	Department  string
	SubmittedBy string
}

// Column header names of the record store, in column order. Recent-entries
// responses project rows onto these keys.
const (
	HeaderTimestamp   = "Timestamp"
	HeaderName        = "Name"
	HeaderEmail       = "Email"
	HeaderPhone       = "Phone"
	HeaderDepartment  = "Department"
	HeaderSubmittedBy = "Submitted By"
)

// EntryHeaders lists the record store headers in column order.
func EntryHeaders() []string {
	return []string{
		HeaderTimestamp,
		HeaderName,
		HeaderEmail,
		HeaderPhone,
		HeaderDepartment,
		HeaderSubmittedBy,
	}
}

// Project maps the entry onto the store's header names. The timestamp is
// rendered as RFC3339 text; other cells pass through as strings.
func (e Entry) Project() map[string]any {
	return map[string]any{
		HeaderTimestamp:   e.Timestamp.UTC().Format(time.RFC3339),
		HeaderName:        e.Name,
		HeaderEmail:       e.Email,
		HeaderPhone:       e.Phone,
		HeaderDepartment:  e.Department,
		HeaderSubmittedBy: e.SubmittedBy,
	}
}
