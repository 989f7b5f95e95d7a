package filestorage

import (
	"fmt"

	"github.com/maritimetq/talentquest/internal/config"
)

// New builds the storage selected by cfg.Storage.Driver.
func New(cfg *config.Config) (FileStorage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		return NewS3Storage(S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
		})
	case config.StorageDriverLocal, "":
		return NewLocalStorage(cfg.Server.StoragePath, joinURL(cfg.Server.PublicBaseURL, "uploads"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
