package config

import (
	"context"

	"github.com/matzehuels/flighttree/pkg/cache"
	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
)

// OpenCache connects to the configured store backend. The returned keyer
// carries the backend's key prefix.
func (s Store) OpenCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()

	switch s.Backend {
	case BackendNone:
		return cache.NewNullCache(), keyer, nil
	case BackendMemory:
		return cache.NewMemoryCache(), keyer, nil
	case BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "connect to redis at %s", s.Redis.Addr)
		}
		if s.Redis.Prefix != "" {
			keyer = cache.NewScopedKeyer(keyer, s.Redis.Prefix)
		}
		return c, keyer, nil
	case BackendMongo:
		c, err := cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        s.Mongo.URI,
			Database:   s.Mongo.Database,
			Collection: s.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
		}
		return c, keyer, nil
	default:
		dir, err := s.DatasetDir()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "resolve dataset directory")
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "open dataset directory %s", dir)
		}
		return c, keyer, nil
	}
}

// OpenStore opens the configured backend and wraps it in a dataset store.
// The caller must close the returned cache.
func (s Store) OpenStore(ctx context.Context) (*dataset.Store, cache.Cache, error) {
	c, keyer, err := s.OpenCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	return dataset.NewStore(c, keyer, s.TTL.Duration), c, nil
}
