package filter

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
)

const defaultMemoSize = 32

// Memo is a bounded LRU of filtered point slices keyed by criteria key.
// Entries are session-local and only valid against one point set;
// whoever replaces the set must Purge.
type Memo struct {
	cache *lru.Cache[string, []model.Point]
}

func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = defaultMemoSize
	}
	c, err := lru.New[string, []model.Point](size)
	if err != nil {
		return nil, fmt.Errorf("filter memo: %w", err)
	}
	return &Memo{cache: c}, nil
}

func (m *Memo) Get(key string) ([]model.Point, bool) {
	if v, ok := m.cache.Get(key); ok {
		observability.IncFilterMemoHit()
		return v, true
	}
	observability.IncFilterMemoMiss()
	return nil, false
}

func (m *Memo) Add(key string, points []model.Point) {
	m.cache.Add(key, points)
}

func (m *Memo) Purge() {
	m.cache.Purge()
}

func (m *Memo) Len() int {
	return m.cache.Len()
}
