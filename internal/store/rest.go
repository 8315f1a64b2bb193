package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ukydev/fleet-manager/internal/models"
)

// RESTStore reads collections from the fleet REST API, where every
// collection is served as a JSON array at {BaseURL}/{collection}.
type RESTStore struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewRESTStore creates a REST-backed store.
func NewRESTStore(baseURL, token string, timeout time.Duration) *RESTStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RESTStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
	}
}

// ListAll fetches every record of a collection.
func (s *RESTStore) ListAll(ctx context.Context, collection string) ([]models.Record, error) {
	if !ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	var records []models.Record
	if err := s.getJSON(ctx, s.BaseURL+"/"+collection, &records); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

// Get fetches a single record by id.
func (s *RESTStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if !ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	var record models.Record
	if err := s.getJSON(ctx, s.BaseURL+"/"+collection+"/"+url.PathEscape(id), &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RESTStore) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
