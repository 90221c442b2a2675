package domain

import "context"

// RosterSource fetches pages of employee records from the remote directory.
type RosterSource interface {
	FetchPage(ctx context.Context, limit, skip int) (*RosterPage, error)
}

// Slot is a single named durable value, read and replaced whole.
// Read returns (nil, nil) when the slot has never been written.
//
// Update passes the current payload (nil when never written) to fn and stores what fn returns,
// with no other Update on the same slot interleaving between the read and the write. When fn
// returns an error nothing is stored and Update returns that error. Backends with optimistic
// transactions may call fn more than once.
type Slot interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// EmployeeIndex is a full-text index over roster records.
type EmployeeIndex interface {
	IndexEmployees(ctx context.Context, employees []Employee) error
	SearchEmployees(ctx context.Context, query string, size int) ([]Employee, error)
	Clear(ctx context.Context) error
}
