package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/render"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/signal"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/store"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/topology"
)

// ErrDisposed is returned by operations on an engine after Dispose.
var ErrDisposed = errors.New("engine disposed")

// Options configures propagation timing and the rendering capability. Zero
// values fall back to module defaults.
type Options struct {
	// Scheduler provides the frame callback. Defaults to a TimerScheduler
	// running at FrameInterval.
	Scheduler FrameScheduler
	// FrameInterval is the batching granularity when no Scheduler is given.
	FrameInterval time.Duration
	// MinRefreshInterval throttles topology re-evaluation through Refresh.
	MinRefreshInterval time.Duration
	// Renderer receives direct visual writes. Defaults to a LogRenderer.
	Renderer render.Renderer
}

// Engine is the dual-tier propagation engine for one editor instance. It is
// safe for use from the host event loop plus the frame-callback goroutine;
// all public methods serialize on one mutex.
type Engine struct {
	mu sync.Mutex

	ctx      context.Context
	renderer render.Renderer
	sched    FrameScheduler
	authTier store.Store

	topoCache *topology.Cache
	index     *topology.Index
	network   *signal.Network
	unsubs    []func()
	snapshot  graph.Snapshot

	states  map[string]State
	visual  map[string]bool
	pending map[string]bool

	cancelFrame func()
	lastRefresh time.Time
	minRefresh  time.Duration
	disposed    bool
}

// New builds an engine committing to the given authoritative store. The
// context carries the logger used for diagnostics over the engine's lifetime.
func New(ctx context.Context, authoritative store.Store, opts Options) *Engine {
	sched := opts.Scheduler
	if sched == nil {
		sched = NewTimerScheduler(opts.FrameInterval)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewLogRenderer(ctx)
	}
	minRefresh := opts.MinRefreshInterval
	if minRefresh <= 0 {
		minRefresh = DefaultMinRefreshInterval
	}
	return &Engine{
		ctx:        ctx,
		renderer:   renderer,
		sched:      sched,
		authTier:   authoritative,
		topoCache:  topology.NewCache(),
		states:     make(map[string]State),
		visual:     make(map[string]bool),
		pending:    make(map[string]bool),
		minRefresh: minRefresh,
	}
}

// Initialize (re)builds the signal network and path table for a snapshot.
// Cell values, machine states and pending commits of surviving nodes are
// preserved; state for removed nodes is dropped.
func (e *Engine) Initialize(ctx context.Context, s graph.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}
	e.rewire(ctx, s)
	e.lastRefresh = time.Now()
	return nil
}

// Refresh re-evaluates the topology for a snapshot. Calls arriving faster
// than the minimum re-evaluation interval are skipped; a genuine topology
// change always rewires on the next accepted call.
func (e *Engine) Refresh(ctx context.Context, s graph.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return ErrDisposed
	}
	if time.Since(e.lastRefresh) < e.minRefresh {
		return nil
	}
	e.lastRefresh = time.Now()
	if e.index != nil && e.index.Fingerprint() == topology.Fingerprint(s) {
		e.snapshot = s
		return nil
	}
	e.rewire(ctx, s)
	return nil
}

// rewire rebuilds the topology index, network and subscriptions. Caller holds
// the lock.
func (e *Engine) rewire(ctx context.Context, s graph.Snapshot) {
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
	prev := e.network

	e.snapshot = s
	e.index = e.topoCache.Rebuild(ctx, s)

	ids := make([]string, 0, len(s.Nodes))
	alive := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		ids = append(ids, n.ID)
		alive[n.ID] = true
	}
	e.network = signal.NewNetwork(ids)

	// Carry surviving cell values across the rewire without re-notifying.
	if prev != nil {
		for _, id := range ids {
			if old, ok := prev.Cell(id); ok {
				cell, _ := e.network.Cell(id)
				cell.Silently(old.Get())
			}
		}
		prev.Dispose()
	}

	for id := range e.states {
		if !alive[id] {
			delete(e.states, id)
		}
	}
	for id := range e.visual {
		if !alive[id] {
			delete(e.visual, id)
		}
	}
	for id := range e.pending {
		if !alive[id] {
			delete(e.pending, id)
		}
	}

	for _, id := range ids {
		cell, _ := e.network.Cell(id)
		nodeID := id
		e.unsubs = append(e.unsubs, cell.Subscribe(func(v bool) {
			e.onCellChange(nodeID, v)
		}))
	}
}

// SetActivation is the host entrypoint: it writes a node's signal and lets
// the reactive network carry the consequences. Unknown node ids log a
// warning and are otherwise ignored; the hot path never returns an error.
func (e *Engine) SetActivation(id string, active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed || e.network == nil {
		return
	}
	cell, ok := e.network.Cell(id)
	if !ok {
		ctxlog.FromContext(e.ctx).Warn("activation for unknown node",
			ctxlog.Category(ctxlog.CategorySignal), "node", id)
		return
	}
	cell.Set(active)
}

// onCellChange drives the node's own state machine and continues propagation.
// It runs synchronously inside a cell.Set call; the engine lock is already
// held by the public entrypoint.
func (e *Engine) onCellChange(id string, v bool) {
	if v {
		e.transition(id, true)
		// Lazy forward propagation: one hop. Each child's own subscriber
		// continues the chain.
		children, err := e.index.Children(id)
		if err != nil {
			children = e.directChildrenFallback(id)
		}
		for _, child := range children {
			if cell, ok := e.network.Cell(child); ok {
				cell.Set(true)
			}
		}
		return
	}

	e.transition(id, false)
	e.sweep(id)
}

// sweep is the explicit recursive deactivation pass over the precomputed
// downstream set. Downstream cells are flipped silently so the sweep is the
// single traceable operation, not a cascade of independent sweeps.
func (e *Engine) sweep(origin string) {
	downstream, err := e.index.DownstreamOf(origin)
	if err != nil {
		ctxlog.FromContext(e.ctx).Warn("downstream set unavailable, falling back to direct children",
			ctxlog.Category(ctxlog.CategorySignal), "node", origin, "error", err)
		downstream = e.directChildrenFallback(origin)
	}
	for _, id := range downstream {
		if cell, ok := e.network.Cell(id); ok {
			cell.Silently(false)
		}
		e.transition(id, false)
	}
	if len(downstream) > 0 {
		ctxlog.FromContext(e.ctx).Debug("deactivation sweep",
			ctxlog.Category(ctxlog.CategorySignal), "origin", origin, "nodes", len(downstream))
	}
}

// directChildrenFallback recovers direct children from the raw snapshot when
// the index is stale.
func (e *Engine) directChildrenFallback(id string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, edge := range e.snapshot.Children(id) {
		if !seen[edge.Target] {
			seen[edge.Target] = true
			out = append(out, edge.Target)
		}
	}
	return out
}

// transition moves a node toward the requested activation through its
// pending state, flips the visual layer, and queues the authoritative
// commit.
func (e *Engine) transition(id string, active bool) {
	current := e.states[id]
	if active {
		if current == Active || current == PendingActivation {
			return
		}
		e.states[id] = PendingActivation
	} else {
		if current == Inactive || current == PendingDeactivation {
			return
		}
		e.states[id] = PendingDeactivation
	}

	e.writeVisual(id, active)

	e.pending[id] = active
	e.scheduleFrame()
}

// writeVisual applies the fast-path visual flip, skipping redundant writes
// through the last-applied cache.
func (e *Engine) writeVisual(id string, active bool) {
	if last, ok := e.visual[id]; ok && last == active {
		return
	}
	e.visual[id] = active
	e.renderer.SetNodeVisualState(id, active)
}

// scheduleFrame arms the frame callback if one is not already outstanding.
func (e *Engine) scheduleFrame() {
	if e.cancelFrame != nil {
		return
	}
	e.cancelFrame = e.sched.Schedule(e.commitFrame)
}

// commitFrame drains the pending set, collapses pending machine states to
// their terminals and commits the batch to the authoritative store. A store
// error is logged; the state machine still completes its transitions so no
// node is left partially activated.
func (e *Engine) commitFrame() {
	e.mu.Lock()
	e.cancelFrame = nil
	if e.disposed || len(e.pending) == 0 {
		e.mu.Unlock()
		return
	}
	batch := e.pending
	e.pending = make(map[string]bool)
	for id := range batch {
		e.states[id] = e.states[id].terminal()
	}
	e.mu.Unlock()

	if err := e.authTier.ApplyActivation(e.ctx, batch); err != nil {
		ctxlog.FromContext(e.ctx).Error("authoritative commit failed",
			ctxlog.Category(ctxlog.CategoryError), "nodes", len(batch), "error", err)
		return
	}
	ctxlog.FromContext(e.ctx).Debug("frame committed",
		ctxlog.Category(ctxlog.CategorySignal), "nodes", len(batch))
}

// State returns a node's current state-machine position.
func (e *Engine) State(id string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[id]
}

// VisualState returns the last-applied visual flag for a node.
func (e *Engine) VisualState(id string) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.visual[id]
	return v, ok
}

// TopologyStats exposes the path-table cache hit/miss counters.
func (e *Engine) TopologyStats() (hits, misses int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.topoCache.Stats()
}

// Dispose cancels any scheduled frame callback and clears all subscriptions
// and bookkeeping. The engine is unusable afterwards.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}
	if e.network != nil {
		e.network.Dispose()
	}
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
	e.pending = make(map[string]bool)
}
