package repository

import (
	"context"
	"fmt"

	"github.com/locvowork/hr_dashboard/internal/database"
)

// DatastoreSlot stores the slot as a Datastore entity keyed by name.
type DatastoreSlot struct {
	client *database.DatastoreClient
	name   string
}

func NewDatastoreSlot(client *database.DatastoreClient, name string) *DatastoreSlot {
	return &DatastoreSlot{client: client, name: name}
}

func (s *DatastoreSlot) Name() string { return s.name }

func (s *DatastoreSlot) Read(ctx context.Context) ([]byte, error) {
	payload, err := s.client.GetSlot(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.name, err)
	}
	return payload, nil
}

func (s *DatastoreSlot) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	if err := s.client.UpdateSlot(ctx, s.name, fn); err != nil {
		return fmt.Errorf("failed to update slot %s: %w", s.name, err)
	}
	return nil
}
