package sqlstore

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s, err := New(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newRecord(t *testing.T, gen *oid.Generator, prefix, label string) store.Record {
	t.Helper()
	id, err := gen.NewOID(prefix)
	require.NoError(t, err)
	return store.NewRecord(id, label)
}

func TestNew_Idempotent(t *testing.T) {
	s := newTestStore(t)
	_, err := New(context.Background(), s.db)
	assert.NoError(t, err)
}

func TestStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := newRecord(t, oid.NewGenerator(), "tst", "first")

	require.NoError(t, s.Put(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "first", got.Label)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_PutDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := newRecord(t, oid.NewGenerator(), "tst", "")

	require.NoError(t, s.Put(ctx, r))
	assert.ErrorIs(t, s.Put(ctx, r), store.ErrExists)
}

func TestStore_PutZero(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Put(context.Background(), store.Record{}), store.ErrZeroID)
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), oid.MustParse("tst-agc6amh7z527vijkv2cutplwaa"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	gen := oid.NewGenerator()

	var flights []store.Record
	for i := 0; i < 5; i++ {
		flights = append(flights, newRecord(t, gen, "flt", ""))
	}
	form := newRecord(t, gen, "frm", "")
	early := newRecord(t, gen, "abc", "")

	for _, i := range []int{2, 4, 0, 3, 1} {
		require.NoError(t, s.Put(ctx, flights[i]))
	}
	require.NoError(t, s.Put(ctx, form))
	require.NoError(t, s.Put(ctx, early))

	got, err := s.List(ctx, "FLT")
	require.NoError(t, err)
	require.Len(t, got, len(flights))
	for i := range flights {
		assert.Equal(t, flights[i].ID, got[i].ID)
	}

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, form.ID, all[6].ID)
	assert.IsIncreasing(t, compareKeys(all))

	none, err := s.List(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.List(ctx, "a-b")
	assert.ErrorIs(t, err, oid.ErrInvalidPrefixChar)
}

// compareKeys maps records to ranks under OID.Compare so ordering can be
// checked with IsIncreasing.
func compareKeys(records []store.Record) []int {
	ranks := make([]int, len(records))
	for i := range records {
		for j := range records {
			if records[j].ID.Compare(records[i].ID) < 0 {
				ranks[i]++
			}
		}
	}
	return ranks
}

func TestStore_ListMatchesCompare(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Values chosen so that string order and byte order disagree.
	low := oid.MustParse("tst-agc6amh7z527vijkv2cutplwaa")
	u := low.UUID()
	u[0] = 0x06
	high, err := oid.WithUUID("tst", u)
	require.NoError(t, err)
	require.Less(t, high.String(), low.String(), "fixture no longer exercises the ordering difference")

	require.NoError(t, s.Put(ctx, store.NewRecord(high, "")))
	require.NoError(t, s.Put(ctx, store.NewRecord(low, "")))

	got, err := s.List(ctx, "tst")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, low, got[0].ID)
	assert.Equal(t, high, got[1].ID)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := newRecord(t, oid.NewGenerator(), "tst", "")

	require.NoError(t, s.Put(ctx, r))
	require.NoError(t, s.Delete(ctx, r.ID))

	_, err := s.Get(ctx, r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, r.ID), store.ErrNotFound)
}

func TestStore_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	gen := oid.NewGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				id, err := gen.NewOID("tst")
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, s.Put(ctx, store.NewRecord(id, "")))
			}
		}()
	}
	wg.Wait()

	all, err := s.List(ctx, "tst")
	require.NoError(t, err)
	assert.Len(t, all, 100)
}
