package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open returns the backend named by opts.Backend. An empty name means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		c, err = orNil(NewFileCache(opts.Dir))
	case BackendRedis:
		c, err = orNil(NewRedisCache(ctx, opts.Redis))
	case BackendMongo:
		c, err = orNil(NewMongoCache(ctx, opts.Mongo))
	case BackendNone:
		c = Disabled()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", opts.Backend, err)
	}
	return c, nil
}

// orNil keeps a failed constructor's nil pointer out of the interface.
func orNil[T Cache](c T, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Disabled returns a cache that misses on every read and drops every
// write. It backs cache.backend = "none" and --no-cache.
func Disabled() Cache { return disabled{} }

type disabled struct{}

func (disabled) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (disabled) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (disabled) Delete(context.Context, string) error { return nil }
func (disabled) Close() error { return nil }
