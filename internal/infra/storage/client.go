package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a Supabase-style storage bucket over its object API. Only
// the generated key is ever persisted on our side, never a full URL.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

func NewClient(baseURL, apiKey, bucket string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) Upload(key, contentType string, data []byte) error {
	req, err := http.NewRequest("POST", c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	// Replacing an attachment reuploads under a fresh key, but upsert keeps
	// a retried request from failing on its own half-written object.
	req.Header.Set("x-upsert", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// Download streams the object back. The caller owns the ReadCloser.
func (c *Client) Download(key string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", c.objectURL(key), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage download: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrObjectNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("storage download failed (status %d)", resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *Client) Exists(key string) (bool, error) {
	req, err := http.NewRequest("HEAD", c.objectURL(key), nil)
	if err != nil {
		return false, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("storage head: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("storage head failed (status %d)", resp.StatusCode)
	}

	return true, nil
}

// Delete treats an already-gone object as success: the remote copy being
// missing must never block clearing our local reference.
func (c *Client) Delete(key string) error {
	req, err := http.NewRequest("DELETE", c.objectURL(key), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage delete failed (status %d)", resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
