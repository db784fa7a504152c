package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(dates ...string) []Entry {
	out := make([]Entry, len(dates))
	for i, d := range dates {
		out[i] = Entry{ID: "id-" + d, Date: d, Content: "on " + d}
	}
	return out
}

func TestCache_ReplaceIsBounded(t *testing.T) {
	c := NewCache(2)
	c.Replace(entries("2024-07-03", "2024-07-02", "2024-07-01"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.ByDate("2024-07-01")
	assert.False(t, ok, "oldest entry is dropped")

	e, ok := c.ByDate("2024-07-03")
	require.True(t, ok)
	assert.Equal(t, "id-2024-07-03", e.ID)
	assert.False(t, c.LoadedAt().IsZero())
}

func TestCache_EntriesIsACopy(t *testing.T) {
	src := entries("2024-07-01")
	c := NewCache(0)
	c.Replace(src)

	src[0].Content = "mutated"
	got := c.Entries()
	got[0].Content = "also mutated"

	e, _ := c.ByDate("2024-07-01")
	assert.Equal(t, "on 2024-07-01", e.Content)
}

func TestJournal_ReloadsCacheAfterMutation(t *testing.T) {
	var lists atomic.Int32
	api := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/entries":
			lists.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
				{"id": "a", "date": "2024-07-01", "content": "saved"},
			}})
		case r.Method == http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": "a", "date": "2024-07-01", "content": "saved"}})
		case r.Method == http.MethodDelete:
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Journal entry not found"})
		}
	}))
	j := &Journal{API: api, Cache: NewCache(10)}

	_, created, err := j.Save(context.Background(), "2024-07-01", "saved")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int32(1), lists.Load())
	assert.Equal(t, 1, j.Cache.Len())

	err = j.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), lists.Load(), "failed mutations do not reload")
}
