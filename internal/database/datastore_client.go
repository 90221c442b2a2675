package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

// SlotKind is the Datastore kind that holds named slots.
const SlotKind = "Slot"

// SlotEntity is a named slot document in Datastore.
type SlotEntity struct {
	Payload   []byte    `datastore:"Payload,noindex"`
	UpdatedAt time.Time `datastore:"UpdatedAt"`
}

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
}

// NewDatastoreClient dials Datastore for the given project.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create datastore client: %w", err)
	}
	return &DatastoreClient{client: client}, nil
}

// WrapDatastoreClient wraps existing datastore client
func WrapDatastoreClient(client *datastore.Client) *DatastoreClient {
	if client == nil {
		return nil
	}
	return &DatastoreClient{client: client}
}

// GetSlot returns the slot payload, or (nil, nil) when the slot does not exist.
func (dc *DatastoreClient) GetSlot(ctx context.Context, name string) ([]byte, error) {
	if dc == nil || dc.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}

	var entity SlotEntity
	err := dc.client.Get(ctx, datastore.NameKey(SlotKind, name, nil), &entity)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.Payload, nil
}

// UpdateSlot reads the slot and stores fn's result in one transaction. Datastore retries the
// transaction on contention, so fn may run more than once. An error from fn aborts without writing.
func (dc *DatastoreClient) UpdateSlot(ctx context.Context, name string, fn func([]byte) ([]byte, error)) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	key := datastore.NameKey(SlotKind, name, nil)
	_, err := dc.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var entity SlotEntity
		if err := tx.Get(key, &entity); err != nil && !errors.Is(err, datastore.ErrNoSuchEntity) {
			return err
		}
		next, err := fn(entity.Payload)
		if err != nil {
			return err
		}
		_, err = tx.Put(key, &SlotEntity{Payload: next, UpdatedAt: time.Now().UTC()})
		return err
	})
	return err
}

// Close releases the underlying client.
func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}
