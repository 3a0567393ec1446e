// Package enums caches the display strings of every introspected enum so
// typed readers can turn raw enum values into names without touching the
// introspection tree on the hot path.
package enums

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// ErrNotInitialized is returned by lookups made before the first Refresh.
var ErrNotInitialized = errors.New("enum lookup accessed without being initialized")

// ErrUnknownEnum is returned when the requested enum id is not cached. The
// error also wraps an *intro.LookupError, so it matches intro.ErrLookup.
var ErrUnknownEnum = errors.New("enum lookup failed")

// Key holds the strings of one enum value.
type Key struct {
	Symbol      string
	Name        string
	ShortName   string
	Description string
}

// KeyMap maps enum values to their strings. KeyMaps handed out by Map are
// shared and must not be modified.
type KeyMap map[int32]Key

// Map is a read-mostly cache of enum strings. Readers load an immutable
// snapshot; Refresh builds a new snapshot and swaps it in.
type Map struct {
	mu       sync.Mutex // serializes Refresh
	snapshot atomic.Pointer[map[pm.Enum]KeyMap]
}

func New() *Map {
	return &Map{}
}

// Refresh rebuilds the cache from root.
func (m *Map) Refresh(root *intro.Root) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nm := make(map[pm.Enum]KeyMap)
	for _, e := range root.Enums() {
		keys := make(KeyMap)
		for _, k := range e.Keys() {
			keys[k.Value()] = Key{
				Symbol:      k.Symbol(),
				Name:        k.Name(),
				ShortName:   k.ShortName(),
				Description: k.Description(),
			}
		}
		nm[e.ID()] = keys
	}
	m.snapshot.Store(&nm)
}

// Initialized reports whether Refresh has completed at least once.
func (m *Map) Initialized() bool {
	return m != nil && m.snapshot.Load() != nil
}

// KeyMap returns the cached keys of an enum.
func (m *Map) KeyMap(enum pm.Enum) (KeyMap, error) {
	if m == nil {
		return nil, ErrNotInitialized
	}
	snap := m.snapshot.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}
	keys, ok := (*snap)[enum]
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrUnknownEnum, &intro.LookupError{Kind: intro.LookupEnum, ID: int64(enum)})
	}
	return keys, nil
}

// Key returns the strings of a single enum value.
func (m *Map) Key(enum pm.Enum, value int32) (Key, bool) {
	keys, err := m.KeyMap(enum)
	if err != nil {
		return Key{}, false
	}
	k, ok := keys[value]
	return k, ok
}

// Name returns the display name of an enum value, or "" if unknown.
func (m *Map) Name(enum pm.Enum, value int32) string {
	k, _ := m.Key(enum, value)
	return k.Name
}

// ShortName returns the short name of an enum value, or "" if unknown.
func (m *Map) ShortName(enum pm.Enum, value int32) string {
	k, _ := m.Key(enum, value)
	return k.ShortName
}

// Symbol returns the symbol of an enum value, or "" if unknown.
func (m *Map) Symbol(enum pm.Enum, value int32) string {
	k, _ := m.Key(enum, value)
	return k.Symbol
}
