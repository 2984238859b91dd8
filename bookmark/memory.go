package bookmark

import (
	"context"
	"fmt"
	"sync"

	"github.com/petar/GoLLRB/llrb"
)

type item Bookmark

func (i item) Less(than llrb.Item) bool {
	return i.Hash < than.(item).Hash
}

// MemoryStore keeps bookmarks in an ordered tree for the life of the process
type MemoryStore struct {
	lock sync.RWMutex
	tree *llrb.LLRB
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tree: llrb.New()}
}

func (s *MemoryStore) Put(_ context.Context, b Bookmark) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing := s.tree.Get(item{Hash: b.Hash}); existing != nil {
		if existing.(item).Room != b.Room {
			return fmt.Errorf("bookmark: %v is already taken by another room", b.Hash)
		}
		return nil
	}

	s.tree.ReplaceOrInsert(item(b))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, hash string) (Bookmark, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	found := s.tree.Get(item{Hash: hash})
	if found == nil {
		return Bookmark{}, fmt.Errorf("%w: %v", ErrNotFound, hash)
	}

	return Bookmark(found.(item)), nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.tree.Len(), nil
}

// Keys lists every hash in ascending order
func (s *MemoryStore) Keys() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]string, 0, s.tree.Len())

	min := s.tree.Min()
	if min == nil {
		return keys
	}

	s.tree.AscendGreaterOrEqual(min, func(i llrb.Item) bool {
		keys = append(keys, i.(item).Hash)
		return true
	})

	return keys
}

func (s *MemoryStore) Close() error {
	return nil
}
