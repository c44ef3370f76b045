// Package topology precomputes reachability over the node graph so the
// propagation engine never re-derives downstream sets per event.
//
// An Index is built from a graph snapshot and reused as long as the topology
// fingerprint (node id set plus edge endpoint set) is unchanged, making the
// common no-change path an O(1) string compare. Payload edits do not change
// the fingerprint and never trigger a rebuild.
package topology

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

// ErrStaleTopology is returned when an index lookup references a node that is
// no longer part of the indexed graph.
var ErrStaleTopology = errors.New("stale topology")

// Index is an immutable precomputed view of one graph topology.
type Index struct {
	fingerprint string
	heads       []string
	children    map[string][]string
	depth       map[string]int
	downstream  map[string][]string
}

// Fingerprint returns the topology fingerprint this index was built from.
func (x *Index) Fingerprint() string { return x.fingerprint }

// Heads returns the head node ids in sorted order. A head has no incoming
// edge on a primary (non-auxiliary) handle.
func (x *Index) Heads() []string { return x.heads }

// Children returns the direct downstream node ids of a node. The second
// return is false when the node is unknown to this index.
func (x *Index) Children(id string) ([]string, error) {
	ch, ok := x.children[id]
	if !ok {
		return nil, ErrStaleTopology
	}
	return ch, nil
}

// Depth returns a node's minimum depth from any head. Nodes unreachable from
// every head report false.
func (x *Index) Depth(id string) (int, bool) {
	d, ok := x.depth[id]
	return d, ok
}

// Downstream returns every node reachable from the given head, ordered by
// increasing depth so a batch update visits upstream nodes first.
func (x *Index) Downstream(headID string) ([]string, error) {
	ds, ok := x.downstream[headID]
	if !ok {
		return nil, ErrStaleTopology
	}
	return ds, nil
}

// DownstreamOf returns every node reachable from an arbitrary node (not just
// a head), ordered by increasing depth. Used by the deactivation sweep.
func (x *Index) DownstreamOf(id string) ([]string, error) {
	if _, ok := x.children[id]; !ok {
		return nil, ErrStaleTopology
	}
	reach := x.collect(id)
	x.sortByDepth(reach)
	return reach, nil
}

// collect runs a depth-first traversal from the node, excluding the node
// itself. The visited set guards against runaway recursion should a cycle
// ever slip past edge validation.
func (x *Index) collect(id string) []string {
	visited := map[string]bool{id: true}
	var out []string
	var visit func(string)
	visit = func(cur string) {
		for _, child := range x.children[cur] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			visit(child)
		}
	}
	visit(id)
	return out
}

func (x *Index) sortByDepth(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		di, iok := x.depth[ids[i]]
		dj, jok := x.depth[ids[j]]
		if iok != jok {
			return iok
		}
		if di != dj {
			return di < dj
		}
		return ids[i] < ids[j]
	})
}

// Fingerprint computes the topology fingerprint of a snapshot: a SHA-1 over
// the sorted node id list and the sorted edge endpoint list. Payload content
// does not participate.
func Fingerprint(s graph.Snapshot) string {
	nodeIDs := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		nodeIDs = append(nodeIDs, n.ID)
	}
	sort.Strings(nodeIDs)

	endpoints := make([]string, 0, len(s.Edges))
	for _, e := range s.Edges {
		endpoints = append(endpoints, e.Source+"."+e.SourceHandle+">"+e.Target+"."+e.TargetHandle)
	}
	sort.Strings(endpoints)

	h := sha1.New()
	h.Write([]byte(strings.Join(nodeIDs, ",")))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.Join(endpoints, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// Cache owns the last built Index for one editor instance and reuses it while
// the topology fingerprint is unchanged.
type Cache struct {
	last *Index

	// diagnostics, read by tests through Stats
	hits   int
	misses int
}

// NewCache returns an empty topology cache.
func NewCache() *Cache {
	return &Cache{}
}

// Stats reports cache reuse counts.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Rebuild returns an Index for the snapshot, reusing the cached one when the
// topology fingerprint matches.
func (c *Cache) Rebuild(ctx context.Context, s graph.Snapshot) *Index {
	logger := ctxlog.FromContext(ctx)
	fp := Fingerprint(s)
	if c.last != nil && c.last.fingerprint == fp {
		c.hits++
		logger.Debug("topology unchanged, reusing path table", ctxlog.Category(ctxlog.CategoryGraph), "fingerprint", fp)
		return c.last
	}
	c.misses++
	idx := build(s, fp)
	c.last = idx
	logger.Debug("path table rebuilt",
		ctxlog.Category(ctxlog.CategoryGraph),
		"fingerprint", fp,
		"heads", len(idx.heads),
		"nodes", len(idx.children),
	)
	return idx
}

func build(s graph.Snapshot, fp string) *Index {
	idx := &Index{
		fingerprint: fp,
		children:    make(map[string][]string, len(s.Nodes)),
		depth:       make(map[string]int, len(s.Nodes)),
		downstream:  make(map[string][]string),
	}

	hasPrimaryParent := make(map[string]bool, len(s.Nodes))
	childSet := make(map[string]map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		childSet[n.ID] = make(map[string]bool)
	}
	for _, e := range s.Edges {
		src, srcOK := childSet[e.Source]
		_, tgtOK := childSet[e.Target]
		if !srcOK || !tgtOK {
			continue
		}
		src[e.Target] = true
		if !graph.IsAuxiliaryHandle(e.TargetHandle) {
			hasPrimaryParent[e.Target] = true
		}
	}
	for id, set := range childSet {
		children := make([]string, 0, len(set))
		for child := range set {
			children = append(children, child)
		}
		sort.Strings(children)
		idx.children[id] = children
	}

	for _, n := range s.Nodes {
		if !hasPrimaryParent[n.ID] {
			idx.heads = append(idx.heads, n.ID)
		}
	}
	sort.Strings(idx.heads)

	// Minimum depth from any head: one multi-source BFS.
	queue := make([]string, 0, len(idx.heads))
	for _, h := range idx.heads {
		idx.depth[h] = 0
		queue = append(queue, h)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range idx.children[cur] {
			if _, seen := idx.depth[child]; seen {
				continue
			}
			idx.depth[child] = idx.depth[cur] + 1
			queue = append(queue, child)
		}
	}

	for _, h := range idx.heads {
		reach := idx.collect(h)
		idx.sortByDepth(reach)
		idx.downstream[h] = reach
	}

	return idx
}
