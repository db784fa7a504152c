package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:3000", "ftp://example.com", "://"} {
		_, err := New(Config{BaseURL: u})
		assert.Error(t, err, u)
	}
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entries", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "b", "_id": "b", "date": "2024-07-02", "content": "two", "createdAt": "2024-07-02T10:00:00Z", "updatedAt": "2024-07-02T10:00:00Z"},
				{"id": "a", "_id": "a", "date": "2024-07-01", "content": "one", "createdAt": "2024-07-01T10:00:00Z", "updatedAt": "2024-07-01T11:00:00Z"},
			},
		})
	}))

	entries, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-07-02", entries[0].Date)
	assert.Equal(t, time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC), entries[1].UpdatedAt.UTC())
}

func TestClient_Get_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entries/2024-07-09", r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "No entry found for this date"})
	}))

	_, err := c.Get(context.Background(), "2024-07-09")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No entry found for this date", apiErr.Message)
}

func TestClient_Save(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-07-01", body["date"])

		code, msg := http.StatusCreated, "Journal entry created successfully"
		if calls.Add(1) > 1 {
			code, msg = http.StatusOK, "Journal entry updated successfully"
		}
		writeJSON(w, code, map[string]any{
			"success": true, "message": msg,
			"data": map[string]any{"id": "a", "date": body["date"], "content": body["content"]},
		})
	}))

	e, created, err := c.Save(context.Background(), "2024-07-01", "hello")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "hello", e.Content)

	_, created, err = c.Save(context.Background(), "2024-07-01", "hello again")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestClient_Save_Validation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Content cannot be empty"})
	}))

	_, _, err := c.Save(context.Background(), "2024-07-01", "   ")
	assert.True(t, IsValidation(err))
}

func TestClient_UpdateAndDelete(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entries/id-1", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": "id-1", "content": "edited"}})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Journal entry deleted successfully"})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))

	e, err := c.Update(context.Background(), "id-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", e.Content)
	assert.NoError(t, c.Delete(context.Background(), "id-1"))
}

func TestClient_Search_EncodesQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "50% & more", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}, "count": 0})
	}))

	entries, err := c.Search(context.Background(), "50% & more")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_Stats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"totalEntries": 0, "avgWordsPerEntry": 0, "firstEntryDate": nil, "lastEntryDate": nil, "totalWords": 0,
		}})
	}))

	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalEntries)
	assert.Nil(t, st.FirstEntryDate)
}

func TestClient_TooManyRequestsIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "2")
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"success": false, "message": "Too many requests, please try again later"})
	}))

	_, err := c.List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, 2*time.Second, apiErr.RetryAfter)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_NonJSONError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))

	_, err := c.List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, retryAfter("3"))
	assert.Equal(t, time.Second, retryAfter(""))
	assert.Equal(t, time.Second, retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}
