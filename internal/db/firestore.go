package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/store"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewFirestoreClient creates a Firestore client from service account JSON.
func NewFirestoreClient(ctx context.Context, projectID string, credentialsJSON []byte) (*firestore.Client, error) {
	var opts []option.ClientOption
	if len(credentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	return client, nil
}

// PingFirestore performs a lightweight check by listing root collections.
func PingFirestore(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collections(ctx)
	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}

// FirestoreStore is a store.RecordStore over Firestore collections.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a record store backed by client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ListAll returns every document in the collection. The document id is
// exposed as the "id" field.
func (s *FirestoreStore) ListAll(ctx context.Context, collection string) ([]models.Record, error) {
	if !store.ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownCollection, collection)
	}

	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var records []models.Record
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s: %w", collection, err)
		}
		records = append(records, fromFirestore(doc.Ref.ID, doc.Data()))
	}
	return records, nil
}

// Get returns a single document by id.
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if !store.ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownCollection, collection)
	}

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return fromFirestore(snap.Ref.ID, snap.Data()), nil
}

// fromFirestore converts document data into a record. Timestamps become
// models.Timestamp values and references become document ids.
func fromFirestore(id string, data map[string]interface{}) models.Record {
	record := make(models.Record, len(data)+1)
	for k, v := range data {
		record[k] = convertFirestore(v)
	}
	record["id"] = id
	return record
}

func convertFirestore(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		return models.NewTimestamp(val)
	case *firestore.DocumentRef:
		if val == nil {
			return nil
		}
		return val.ID
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = convertFirestore(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = convertFirestore(item)
		}
		return out
	default:
		return v
	}
}
