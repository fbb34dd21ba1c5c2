package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Init())
	return s
}

func TestInitIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.Init())
	require.NoError(t, s.Init())
}

func TestListAllEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestAppendAndListAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	firstID, err := s.Append(ctx, "bob@example.com", "meeting", "formal", "Meeting request", "Dear Bob, ...")
	require.NoError(t, err)

	secondID, err := s.Append(ctx, "carol@example.com", "", "", "Follow-up", "Hi Carol, ...")
	require.NoError(t, err)
	require.Greater(t, secondID, firstID)

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first.
	require.Equal(t, secondID, records[0].ID)
	require.Equal(t, "carol@example.com", records[0].ReceiverEmail)
	require.Equal(t, "Follow-up", records[0].Subject)
	require.Equal(t, "Hi Carol, ...", records[0].Body)

	require.Equal(t, firstID, records[1].ID)
	require.Equal(t, "bob@example.com", records[1].ReceiverEmail)
	require.Equal(t, "meeting", records[1].EmailType)
	require.Equal(t, "formal", records[1].Tone)
}

func TestConcurrentAppendsAssignUniqueMonotonicIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	ids := make(chan int64, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, err := s.Append(ctx, "bob@example.com", "", "", fmt.Sprintf("Subject %d", n), "Body")
			if err != nil {
				t.Errorf("concurrent append: %v", err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	require.Len(t, seen, writers)

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, writers)
	for i := 1; i < len(records); i++ {
		require.Greater(t, records[i-1].ID, records[i].ID, "listing must be strictly id-descending")
	}
}

func TestAppendUsesStoreClock(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	fixed := time.Date(2025, time.March, 15, 10, 30, 45, 123456789, time.Local)
	s.now = func() time.Time { return fixed }

	_, err := s.Append(context.Background(), "bob@example.com", "", "", "Subject", "Body")
	require.NoError(t, err)

	records, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Second precision, store-assigned.
	require.Equal(t, "2025-03-15 10:30:45", records[0].SentTime)

	_, err = time.ParseInLocation(timeLayout, records[0].SentTime, time.Local)
	require.NoError(t, err)
}
