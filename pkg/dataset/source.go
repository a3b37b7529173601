package dataset

import (
	"context"
	"fmt"

	"github.com/dd0wney/corridor-planarity/pkg/config"
)

// Source produces a dataset from some external store
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
	Close() error
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*S3Source)(nil)
	_ Source = (*PostgresSource)(nil)
)

// NewSource builds the source described by the configuration
func NewSource(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	var (
		src Source
		err error
	)
	switch cfg.Kind {
	case config.SourceFile, "":
		src, err = NewFileSource(cfg.Path, cfg.Format)
	case config.SourceS3:
		src, err = NewS3Source(ctx, S3Config{
			Bucket:          cfg.Bucket,
			Key:             cfg.Key,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Format:          cfg.Format,
		})
	case config.SourcePostgres:
		src, err = NewPostgresSource(ctx, cfg.DSN, cfg.SettlementsTable, cfg.CorridorsTable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
