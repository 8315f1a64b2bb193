// Package backend builds the record store selected by configuration.
package backend

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/config"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/store"
)

// CleanupFunc releases backend resources.
type CleanupFunc func(ctx context.Context) error

// Result is a ready record store plus what else the backend can offer.
type Result struct {
	Records store.RecordStore
	// Users is nil for backends without a user collection.
	Users db.UserCollection
	// Mongo is set only for the mongo backend, for writers such as the seeder.
	Mongo   *db.MongoStore
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *Result) Close(ctx context.Context) error {
	if r.Cleanup == nil {
		return nil
	}
	return r.Cleanup(ctx)
}

// New creates the backend named by cfg.Backend.
func New(ctx context.Context, cfg config.Config) (*Result, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return newMongo(ctx, cfg)
	case config.BackendFirestore:
		return newFirestore(ctx, cfg)
	case config.BackendREST:
		return newREST(cfg)
	case config.BackendMemory:
		log.Info("Initialized memory backend")
		return &Result{Records: store.NewMemoryStore()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
	}
}

func newMongo(ctx context.Context, cfg config.Config) (*Result, error) {
	client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mongo backend: %w", err)
	}
	database := client.Database(cfg.Mongo.Database)

	users := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	if err := users.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to ensure user indexes")
	}

	mongoStore := db.NewMongoStore(database)
	log.WithField("database", cfg.Mongo.Database).Info("Initialized mongo backend")
	return &Result{
		Records: mongoStore,
		Users:   users,
		Mongo:   mongoStore,
		Cleanup: client.Disconnect,
	}, nil
}

func newFirestore(ctx context.Context, cfg config.Config) (*Result, error) {
	creds, source, err := cfg.FirestoreCredentialsJSON()
	if err != nil {
		return nil, err
	}
	client, err := db.NewFirestoreClient(ctx, cfg.Firestore.ProjectID, creds)
	if err != nil {
		return nil, err
	}
	if err := db.PingFirestore(ctx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("firestore ping: %w", err)
	}

	log.WithFields(log.Fields{"project_id": cfg.Firestore.ProjectID, "credentials": source}).Info("Initialized firestore backend")
	return &Result{
		Records: db.NewFirestoreStore(client),
		Cleanup: func(context.Context) error { return client.Close() },
	}, nil
}

func newREST(cfg config.Config) (*Result, error) {
	if cfg.REST.BaseURL == "" {
		return nil, fmt.Errorf("rest backend requires a base url")
	}
	log.WithField("base_url", cfg.REST.BaseURL).Info("Initialized rest backend")
	return &Result{Records: store.NewRESTStore(cfg.REST.BaseURL, cfg.REST.Token, cfg.REST.Timeout)}, nil
}
