package mapping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"stock-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the configured mapping document does not exist.
var ErrNotFound = errors.New("mapping not found")

// ReadFile loads a mapping from a local JSON or YAML file.
func ReadFile(path string, logger *zap.Logger) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	return Parse(data, FormatFromName(path), logger)
}

// ReadObject loads a mapping document from object storage.
func ReadObject(ctx context.Context, client storage.Client, bucket, objectName string, logger *zap.Logger) (*Mapping, error) {
	if client == nil {
		return nil, fmt.Errorf("storage source requires a storage client")
	}

	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, objectError(bucket, objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, objectError(bucket, objectName, err)
	}
	return Parse(data, FormatFromName(objectName), logger)
}

func objectError(bucket, objectName string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, bucket, objectName)
	}
	return fmt.Errorf("failed to read mapping object %s/%s: %w", bucket, objectName, err)
}

// Loader reads the mapping from the configured source once per run.
type Loader struct {
	cfg     Config
	logger  *zap.Logger
	storage storage.Client
	bucket  string
	db      *gorm.DB
}

// Option configures a Loader.
type Option func(*Loader)

// WithStorage enables the storage source.
func WithStorage(client storage.Client, bucket string) Option {
	return func(l *Loader) {
		l.storage = client
		l.bucket = bucket
	}
}

// WithDatabase enables the database source.
func WithDatabase(db *gorm.DB) Option {
	return func(l *Loader) {
		l.db = db
	}
}

// NewLoader creates a mapping loader.
func NewLoader(cfg Config, logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Read loads the mapping and returns any failure to the caller.
func (l *Loader) Read(ctx context.Context) (*Mapping, error) {
	switch l.cfg.Source {
	case SourceFile, "":
		return ReadFile(l.cfg.Path, l.logger)
	case SourceStorage:
		return ReadObject(ctx, l.storage, l.bucket, l.cfg.Object, l.logger)
	case SourceDatabase:
		return ReadDatabase(ctx, l.db, l.logger)
	default:
		return nil, fmt.Errorf("unknown mapping source %q", l.cfg.Source)
	}
}

// Load reads the mapping and never fails: a missing document yields an empty
// mapping with a warning, any other failure yields an empty mapping with an error log.
func (l *Loader) Load(ctx context.Context) *Mapping {
	m, err := l.Read(ctx)
	switch {
	case err == nil:
		l.logger.Info("Loaded product mapping",
			zap.String("source", l.source()),
			zap.Int("count", m.Len()),
		)
		return m
	case errors.Is(err, ErrNotFound):
		l.logger.Warn("Product mapping not found - using empty mapping", zap.Error(err))
	default:
		l.logger.Error("Failed to load product mapping - using empty mapping", zap.Error(err))
	}
	return Empty()
}

func (l *Loader) source() string {
	if l.cfg.Source == "" {
		return SourceFile
	}
	return l.cfg.Source
}
