package store

import (
	"context"
	"fmt"

	"github.com/milestone-dev/milestone/pkg/config"
)

// Open returns the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageFile, "":
		return NewFileStore(cfg.DataDir)
	case config.StorageMongo:
		return NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.Database)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
