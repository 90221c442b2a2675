package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookmarkStore(slot domain.Slot) (*BookmarkStore, *int) {
	n := NewNotifier()
	broadcasts := 0
	n.Subscribe(func(context.Context) { broadcasts++ })
	return NewBookmarkStore(slot, n), &broadcasts
}

func TestBookmarkStore_AddRemoveBroadcastsOncePerMutation(t *testing.T) {
	ctx := context.Background()
	store, broadcasts := newTestBookmarkStore(&fakeSlot{})

	changed, err := store.Add(ctx, employee(42, "Ada", "Lovelace", "Engineering", 5))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, store.Contains(ctx, 42))

	changed, err = store.Remove(ctx, 42)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, store.Contains(ctx, 42))

	assert.Empty(t, store.GetAll(ctx))
	assert.Equal(t, 2, *broadcasts)
}

func TestBookmarkStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	store, broadcasts := newTestBookmarkStore(slot)
	e := employee(7, "Sam", "Seller", "Sales", 2)

	_, err := store.Add(ctx, e)
	require.NoError(t, err)
	once := store.GetAll(ctx)

	changed, err := store.Add(ctx, e)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, once, store.GetAll(ctx))
	assert.Equal(t, 1, slot.writes)
	assert.Equal(t, 1, *broadcasts)
}

func TestBookmarkStore_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	store, broadcasts := newTestBookmarkStore(slot)

	changed, err := store.Remove(ctx, 99)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, slot.writes)
	assert.Equal(t, 0, *broadcasts)
}

func TestBookmarkStore_SnapshotSurvivesReload(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	e := employee(5, "Emma", "Miller", "Marketing", 4)
	e.Phone = "+1 555 0100"

	first, _ := newTestBookmarkStore(slot)
	_, err := first.Add(ctx, e)
	require.NoError(t, err)

	reloaded, _ := newTestBookmarkStore(slot)
	all := reloaded.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, e, all[0])
}

func TestBookmarkStore_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestBookmarkStore(&fakeSlot{})
	for _, id := range []int{3, 1, 2} {
		_, err := store.Add(ctx, employee(id, "E", "X", "", 1))
		require.NoError(t, err)
	}

	ids := []int{}
	for _, e := range store.GetAll(ctx) {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, store.IDs(ctx))
}

func TestBookmarkStore_CorruptOrUnavailableReadsAsEmpty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		slot *fakeSlot
	}{
		{name: "absent", slot: &fakeSlot{}},
		{name: "corrupt json", slot: &fakeSlot{payload: []byte(`{not json`)}},
		{name: "wrong shape", slot: &fakeSlot{payload: []byte(`{"id": 1}`)}},
		{name: "read error", slot: &fakeSlot{readErr: errors.New("disk unavailable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestBookmarkStore(tt.slot)
			all := store.GetAll(ctx)
			assert.NotNil(t, all)
			assert.Empty(t, all)
		})
	}
}

func TestBookmarkStore_CorruptPayloadIsReplacedOnAdd(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{payload: []byte(`garbage`)}
	store, _ := newTestBookmarkStore(slot)

	_, err := store.Add(ctx, employee(1, "A", "B", "", 3))
	require.NoError(t, err)
	assert.Len(t, store.GetAll(ctx), 1)
}

func TestBookmarkStore_DuplicateIDsInSlotAreCollapsed(t *testing.T) {
	slot := &fakeSlot{payload: []byte(`[{"id":1,"firstName":"First"},{"id":1,"firstName":"Second"}]`)}
	store, _ := newTestBookmarkStore(slot)

	all := store.GetAll(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "First", all[0].FirstName)
}

func TestBookmarkStore_WriteFailureDoesNotBroadcast(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{writeErr: errors.New("read-only")}
	store, broadcasts := newTestBookmarkStore(slot)

	changed, err := store.Add(ctx, employee(1, "A", "B", "", 3))
	require.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, *broadcasts)
	assert.False(t, store.Contains(ctx, 1))
}

func TestBookmarkStore_NotifiesAfterWrite(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{}
	n := NewNotifier()
	store := NewBookmarkStore(slot, n)

	var seen []domain.Employee
	n.Subscribe(func(ctx context.Context) { seen = store.GetAll(ctx) })

	_, err := store.Add(ctx, employee(8, "A", "B", "", 3))
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, 8, seen[0].ID)
}

func TestBookmarkStore_Toggle(t *testing.T) {
	ctx := context.Background()
	store, broadcasts := newTestBookmarkStore(&fakeSlot{})
	e := employee(11, "T", "Oggle", "", 2)

	on, changed, err := store.Toggle(ctx, e)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, changed)
	assert.True(t, store.Contains(ctx, 11))

	on, changed, err = store.Toggle(ctx, e)
	require.NoError(t, err)
	assert.False(t, on)
	assert.True(t, changed)
	assert.False(t, store.Contains(ctx, 11))
	assert.Equal(t, 2, *broadcasts)
}

func TestBookmarkStore_ReadErrorFailsMutation(t *testing.T) {
	ctx := context.Background()
	slot := &fakeSlot{readErr: errors.New("disk unavailable")}
	store, broadcasts := newTestBookmarkStore(slot)

	changed, err := store.Add(ctx, employee(1, "A", "B", "", 3))
	require.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, slot.writes)
	assert.Equal(t, 0, *broadcasts)
}

func TestBookmarkStore_StoresSharingASlotDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		slot := &fakeSlot{readDelay: time.Millisecond}
		a := NewBookmarkStore(slot, nil)
		b := NewBookmarkStore(slot, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := a.Add(ctx, employee(1, "A", "One", "", 3))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := b.Add(ctx, employee(2, "B", "Two", "", 4))
			assert.NoError(t, err)
		}()
		wg.Wait()

		require.Equal(t, map[int]bool{1: true, 2: true}, a.IDs(ctx), "round %d", round)
		assert.Equal(t, 2, slot.writes)
	}
}
