// Package storage uploads chat attachments to Supabase Storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error)
}

// Client talks to the Supabase Storage API with the service role key.
type Client struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

// NewClient creates a new storage client.
func NewClient(supabaseURL, serviceKey string) *Client {
	return &Client{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientWithHTTPClient is intended for tests; it avoids network access by
// using a custom transport.
func NewClientWithHTTPClient(supabaseURL, serviceKey string, httpClient *http.Client) *Client {
	c := NewClient(supabaseURL, serviceKey)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// Upload writes an object to the bucket and returns its public URL. Buckets
// used for attachments are public-read; access control happens at upload
// time, not read time.
func (c *Client) Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.supabaseURL, bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return c.PublicURL(bucket, objectPath), nil
}

// PublicURL returns the unauthenticated read URL for an object.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.supabaseURL, bucket, objectPath)
}
