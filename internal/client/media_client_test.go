package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBulkDelete_Success(t *testing.T) {
	var gotPath string
	var gotIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotIDs)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewMediaClient(server.URL, time.Second)
	err := c.BulkDelete(context.Background(), []string{"m-1", "m-2"})

	assert.NoError(t, err)
	assert.Equal(t, "/api/media/bulk-delete", gotPath)
	assert.Equal(t, []string{"m-1", "m-2"}, gotIDs)
}

func TestBulkDelete_EmptyListSkipsRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := NewMediaClient(server.URL, time.Second)
	err := c.BulkDelete(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, requests)
}

func TestBulkDelete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage failure", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewMediaClient(server.URL, time.Second)
	err := c.BulkDelete(context.Background(), []string{"m-1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
