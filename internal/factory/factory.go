package factory

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/registry"
)

// Strategy selects the lookup order across the two backing sources.
type Strategy int

const (
	// RegistryFirst consults the declarative registry, then the built-in
	// default table. This is the default strategy.
	RegistryFirst Strategy = iota
	// DefaultsFirst reverses the order.
	DefaultsFirst
	// RegistryOnly and DefaultsOnly pin a single source and fail hard when
	// it cannot satisfy the request.
	RegistryOnly
	DefaultsOnly
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case RegistryFirst:
		return "registry-first"
	case DefaultsFirst:
		return "defaults-first"
	case RegistryOnly:
		return "registry-only"
	case DefaultsOnly:
		return "defaults-only"
	default:
		return "unknown"
	}
}

// FallbackBehavior decides how an unsatisfiable construction surfaces.
type FallbackBehavior int

const (
	// Warn returns nil and logs a warning. This is the default.
	Warn FallbackBehavior = iota
	// Throw returns the error to the caller.
	Throw
	// Silent returns nil with only a debug-level diagnostic.
	Silent
)

// Options configures a Factory.
type Options struct {
	Strategy         Strategy
	EnableCaching    bool
	FallbackBehavior FallbackBehavior
	// CacheCapacity bounds the result cache; zero means DefaultCacheCapacity.
	CacheCapacity int
}

// Factory builds node instances for one editor instance. Safe for concurrent
// use.
type Factory struct {
	mu sync.Mutex

	ctx      context.Context
	reg      *registry.Registry
	registry Source
	defaults Source
	opts     Options
	cache    *lruCache
	metrics  Metrics
	copySeq  int64
}

// New builds a factory over the given registry. The context carries the
// logger used for construction diagnostics.
func New(ctx context.Context, reg *registry.Registry, opts Options) *Factory {
	return &Factory{
		ctx:      ctx,
		reg:      reg,
		registry: &registrySource{reg: reg},
		defaults: &defaultSource{},
		opts:     opts,
		cache:    newLRUCache(opts.CacheCapacity),
	}
}

// CreateNode constructs a node of the given kind at a position, merging the
// registry defaults with the overrides. Under the Warn and Silent policies an
// unsatisfiable request returns (nil, nil) with a logged diagnostic; only the
// Throw policy surfaces the error.
func (f *Factory) CreateNode(kind string, pos graph.Position, overrides map[string]any) (*graph.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	logger := ctxlog.FromContext(f.ctx)

	key := cacheKey("create", kind, pos, overrides)
	if f.opts.EnableCaching {
		cached, err := f.cache.get(key)
		if err != nil {
			// A corrupted cache is wiped and the build proceeds.
			f.metrics.Errors++
			logger.Error("construction cache corrupted, purged",
				ctxlog.Category(ctxlog.CategoryError), "key", key, "error", err)
		} else if cached != nil {
			f.metrics.CacheHits++
			logger.Debug("construction cache hit", ctxlog.Category(ctxlog.CategoryCache), "key", key)
			return cached.Clone(), nil
		}
	}

	node, sourceName, fellBack, err := f.resolve(kind, pos)
	if err != nil {
		f.metrics.Errors++
		return f.fail(fmt.Errorf("create %q: %w", kind, err))
	}

	if len(overrides) > 0 {
		if def, ok := f.reg.Lookup(kind); ok {
			if err := registry.ValidateOverrides(def, overrides); err != nil {
				f.metrics.Errors++
				return f.fail(fmt.Errorf("create %q: %w", kind, err))
			}
		}
		if node.Payload == nil {
			node.Payload = make(map[string]any, len(overrides))
		}
		for k, v := range graph.ClonePayload(overrides) {
			node.Payload[k] = v
		}
	}

	node.ID = nodeID(kind, key)
	if fellBack {
		f.metrics.Fallbacks++
		logger.Debug("construction fell back", ctxlog.Category(ctxlog.CategoryCache),
			"kind", kind, "source", sourceName, "strategy", f.opts.Strategy.String())
	}
	if sourceName == "registry" {
		f.metrics.RegistryHits++
	} else {
		f.metrics.DefaultHits++
	}

	if f.opts.EnableCaching {
		f.cache.add(key, node.Clone())
	}
	return node, nil
}

// CopyNode duplicates a node with a new identity and an offset position. The
// payload is copied by value; the copy shares nothing mutable with the
// original. Copying nil returns nil.
func (f *Factory) CopyNode(node *graph.Node, offset graph.Position) *graph.Node {
	if node == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copySeq++
	clone := node.Clone()
	clone.ID = fmt.Sprintf("%s-copy-%d", node.ID, f.copySeq)
	clone.Position.X += offset.X
	clone.Position.Y += offset.Y
	return clone
}

// ToggleDisplayMode returns a copy of the node with its UI-detail flag
// flipped. The original is untouched.
func (f *Factory) ToggleDisplayMode(node *graph.Node) *graph.Node {
	if node == nil {
		return nil
	}
	clone := node.Clone()
	clone.ShowDetail = !clone.ShowDetail
	return clone
}

// Metrics returns a snapshot of the operation counters.
func (f *Factory) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.metrics
}

// CacheLen reports the number of cached construction results.
func (f *Factory) CacheLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.len()
}

// resolve walks the sources in strategy order.
func (f *Factory) resolve(kind string, pos graph.Position) (*graph.Node, string, bool, error) {
	var order []Source
	switch f.opts.Strategy {
	case RegistryOnly:
		order = []Source{f.registry}
	case DefaultsOnly:
		order = []Source{f.defaults}
	case DefaultsFirst:
		order = []Source{f.defaults, f.registry}
	default:
		order = []Source{f.registry, f.defaults}
	}

	var firstErr error
	for i, src := range order {
		node, err := src.Build(kind, pos)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return node, src.Name(), i > 0, nil
	}
	return nil, "", false, firstErr
}

// fail applies the configured fallback policy. A nil, nil return is always
// preferred over a partially-constructed node.
func (f *Factory) fail(err error) (*graph.Node, error) {
	logger := ctxlog.FromContext(f.ctx)
	switch f.opts.FallbackBehavior {
	case Throw:
		return nil, err
	case Silent:
		logger.Debug("node construction failed", ctxlog.Category(ctxlog.CategoryError), "error", err)
		return nil, nil
	default:
		logger.Warn("node construction failed", ctxlog.Category(ctxlog.CategoryError), "error", err)
		return nil, nil
	}
}

// cacheKey builds the composite construction key:
// operation:kind:position:sortedOverrideKeys.
func cacheKey(op, kind string, pos graph.Position, overrides map[string]any) string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join([]string{
		op,
		kind,
		formatCoord(pos.X) + "," + formatCoord(pos.Y),
		strings.Join(keys, ","),
	}, ":")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nodeID derives a deterministic node id from the construction key, so a
// cache hit and its original are structurally equal.
func nodeID(kind, key string) string {
	sum := sha1.Sum([]byte(key))
	return kind + "-" + hex.EncodeToString(sum[:])[:8]
}
