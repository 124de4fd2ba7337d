package chunktable

import (
	"sync"

	"github.com/golang/snappy"
)

// Store is a minimal key/value collaborator used to persist encoders and
// chunk payloads. Chunk names produced by NameFromID are used as opaque
// keys. Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the value stored under key.
	// It may return an ErrKeyNotFound error.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// SaveEncoder persists an encoder under key. The serialized table is
// stored with a trailing codec byte and is snappy-compressed when that
// makes it smaller.
func SaveEncoder(s Store, key string, e *Encoder) error {
	plain := e.Bytes()

	var value []byte
	if comp := snappy.Encode(nil, plain); len(comp) < len(plain)-len(plain)/4 {
		value = append(comp, envelopeSnappy)
	} else {
		value = append(plain, envelopePlain)
	}
	return s.Put(key, value)
}

// LoadEncoder restores an encoder persisted under key by SaveEncoder.
// It may return an ErrKeyNotFound or ErrBadBuffer error.
func LoadEncoder(s Store, key string) (*Encoder, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, ErrBadBuffer
	}

	body := value[:len(value)-1]
	switch value[len(value)-1] {
	case envelopePlain:
	case envelopeSnappy:
		if body, err = snappy.Decode(nil, body); err != nil {
			return nil, ErrBadBuffer
		}
	default:
		return nil, ErrBadBuffer
	}
	return FromBuffer(body)
}

// --------------------------------------------------------------------

// MemStore is an in-memory Store implementation.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore inits a MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put implements Store.
func (s *MemStore) Put(key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
