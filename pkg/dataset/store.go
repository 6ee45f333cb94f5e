package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flighttree/pkg/cache"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/observability"
)

// Info describes a stored schedule.
type Info struct {
	ID      string    `json:"id"`
	Name    string    `json:"name,omitempty"`
	Codes   int       `json:"codes"`
	Size    int       `json:"size"`
	Created time.Time `json:"created"`
}

// Store keeps raw uploaded schedules in a cache backend. The index of
// stored schedules lives under the keyer's index key. A Store is safe for
// concurrent use within one process.
type Store struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration

	mu  sync.Mutex // serializes index updates
	now func() time.Time
}

// NewStore creates a store on top of c. A nil keyer uses the default keys;
// ttl 0 keeps schedules until deleted.
func NewStore(c cache.Cache, k cache.Keyer, ttl time.Duration) *Store {
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Store{cache: c, keyer: k, ttl: ttl, now: time.Now}
}

// Put validates and stores raw CSV bytes under a fresh identifier. Schedules
// without a Kode column are rejected before anything is written.
func (s *Store) Put(ctx context.Context, name string, raw []byte) (Info, *Dataset, error) {
	ds, err := Load(bytes.NewReader(raw))
	if err != nil {
		return Info{}, nil, err
	}

	info := Info{
		ID:      uuid.NewString(),
		Name:    name,
		Codes:   ds.Len(),
		Size:    len(raw),
		Created: s.now().UTC(),
	}
	if err := s.cache.Set(ctx, s.keyer.DatasetKey(info.ID), raw, s.ttl); err != nil {
		return Info{}, nil, errors.Wrap(errors.ErrCodeStore, err, "store dataset")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.readIndex(ctx)
	if err != nil {
		return Info{}, nil, err
	}
	index = append(index, info)
	if err := s.writeIndex(ctx, index); err != nil {
		return Info{}, nil, err
	}

	observability.Store().OnStorePut(ctx, info.ID, len(raw))
	return info, ds, nil
}

// Raw returns the bytes stored under id.
func (s *Store) Raw(ctx context.Context, id string) ([]byte, error) {
	if err := errors.ValidateDatasetID(id); err != nil {
		return nil, err
	}
	data, ok, err := s.cache.Get(ctx, s.keyer.DatasetKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load dataset %s", id)
	}
	if !ok {
		observability.Store().OnStoreMiss(ctx, id)
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "dataset %s not found", id)
	}
	observability.Store().OnStoreHit(ctx, id)
	return data, nil
}

// Get loads and parses the schedule stored under id.
func (s *Store) Get(ctx context.Context, id string) (*Dataset, error) {
	data, err := s.Raw(ctx, id)
	if err != nil {
		return nil, err
	}
	return Load(bytes.NewReader(data))
}

// Delete removes the schedule stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateDatasetID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(index, func(info Info) bool { return info.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeDatasetNotFound, "dataset %s not found", id)
	}

	if err := s.cache.Delete(ctx, s.keyer.DatasetKey(id)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete dataset %s", id)
	}
	return s.writeIndex(ctx, slices.Delete(index, i, i+1))
}

// List returns the stored schedules, oldest first. Entries whose data has
// expired from the backend are omitted.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.readIndex(ctx)
	if err != nil {
		return nil, err
	}
	if s.ttl <= 0 {
		return index, nil
	}

	live := index[:0]
	for _, info := range index {
		if _, ok, err := s.cache.Get(ctx, s.keyer.DatasetKey(info.ID)); err == nil && ok {
			live = append(live, info)
		}
	}
	return live, nil
}

func (s *Store) readIndex(ctx context.Context) ([]Info, error) {
	data, ok, err := s.cache.Get(ctx, s.keyer.IndexKey())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read dataset index")
	}
	if !ok {
		return nil, nil
	}
	var index []Info
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode dataset index")
	}
	return index, nil
}

func (s *Store) writeIndex(ctx context.Context, index []Info) error {
	data, err := json.Marshal(index)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset index")
	}
	if err := s.cache.Set(ctx, s.keyer.IndexKey(), data, 0); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write dataset index")
	}
	return nil
}
