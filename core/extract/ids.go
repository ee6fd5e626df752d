package extract

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// DefaultIDPrefix is prepended to generated marker identifiers.
const DefaultIDPrefix = "evLow_"

// IDGenerator produces marker identifiers unique within one output document.
type IDGenerator interface {
	NewID() string
}

type shortUUID struct {
	prefix string
	mu     sync.Mutex
	used   map[string]struct{}
}

// ShortUUID returns a generator of prefix plus the first eight characters of
// a random UUID. A short suffix already handed out is drawn again.
func ShortUUID(prefix string) IDGenerator {
	return &shortUUID{prefix: prefix, used: make(map[string]struct{})}
}

func (g *shortUUID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		id := g.prefix + uuid.NewString()[:8]
		if _, dup := g.used[id]; dup {
			continue
		}
		g.used[id] = struct{}{}
		return id
	}
}

type counter struct {
	prefix string
	mu     sync.Mutex
	next   int
}

// Counter returns a generator of prefix plus an increasing integer starting
// at 1. Output is stable across runs.
func Counter(prefix string) IDGenerator {
	return &counter{prefix: prefix}
}

func (g *counter) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.prefix + strconv.Itoa(g.next)
}

// ID generator kinds accepted by NewIDGenerator.
const (
	IDKindUUID    = "uuid"
	IDKindCounter = "counter"
)

// NewIDGenerator picks a generator by name. Empty selects IDKindUUID.
func NewIDGenerator(kind, prefix string) (IDGenerator, error) {
	switch kind {
	case "", IDKindUUID:
		return ShortUUID(prefix), nil
	case IDKindCounter:
		return Counter(prefix), nil
	}
	return nil, fmt.Errorf("unknown id generator %q", kind)
}
