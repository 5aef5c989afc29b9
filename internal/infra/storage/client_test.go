package storage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/pipeline-crm/internal/infra/storage"
)

func TestUploadSendsObjectWithHeaders(t *testing.T) {
	var gotPath, gotAuth, gotType, gotUpsert string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	err := client.Upload("prospects/42/doc.pdf", "application/pdf", []byte("%PDF-1.7"))

	assert.NoError(t, err)
	assert.Equal(t, "/object/attachments/prospects/42/doc.pdf", gotPath)
	assert.Equal(t, "Bearer api-key", gotAuth)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "%PDF-1.7", string(gotBody))
}

func TestUploadSurfacesRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket quota exceeded", http.StatusInsufficientStorage)
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	err := client.Upload("prospects/42/doc.pdf", "application/pdf", []byte("%PDF-1.7"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "507")
}

func TestDownloadMissingObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	_, err := client.Download("prospects/42/doc.pdf")

	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestDownloadStreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 content"))
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	body, err := client.Download("prospects/42/doc.pdf")
	assert.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 content", string(data))
}

func TestExists(t *testing.T) {
	found := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "HEAD", r.Method)
		if !found {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	ok, err := client.Exists("prospects/42/doc.pdf")
	assert.NoError(t, err)
	assert.True(t, ok)

	found = false
	ok, err = client.Exists("prospects/42/doc.pdf")
	assert.NoError(t, err)
	assert.False(t, ok)
}

// An already-gone object is a successful delete.
func TestDeleteToleratesMissingObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := storage.NewClient(server.URL, "api-key", "attachments")

	assert.NoError(t, client.Delete("prospects/42/doc.pdf"))
}
