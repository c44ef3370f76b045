package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

// Run drives a small demonstration graph end to end: a trigger activating a
// text chain, committed through the batched consistency layer. It doubles as
// a smoke test of the full wiring.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app run started")

	trigger, err := a.factory.CreateNode("triggerToggle", graph.Position{X: 0, Y: 0}, nil)
	if err != nil {
		return fmt.Errorf("failed to build trigger node: %w", err)
	}
	text, err := a.factory.CreateNode("createText", graph.Position{X: 200, Y: 0}, map[string]any{"text": "hello"})
	if err != nil {
		return fmt.Errorf("failed to build text node: %w", err)
	}
	view, err := a.factory.CreateNode("viewText", graph.Position{X: 400, Y: 0}, nil)
	if err != nil {
		return fmt.Errorf("failed to build view node: %w", err)
	}
	if trigger == nil || text == nil || view == nil {
		return fmt.Errorf("core node kinds are not registered")
	}

	var s graph.Snapshot
	s = s.AddNode(trigger).AddNode(text).AddNode(view)
	s, err = s.AddEdge(&graph.Edge{
		ID:           graph.ConnectionID(trigger.ID, "output", text.ID, "aux-activate"),
		Source:       trigger.ID,
		SourceHandle: "output",
		Target:       text.ID,
		TargetHandle: "aux-activate",
	})
	if err != nil {
		return err
	}
	s, err = s.AddEdge(&graph.Edge{
		ID:           graph.ConnectionID(text.ID, "output", view.ID, "input"),
		Source:       text.ID,
		SourceHandle: "output",
		Target:       view.ID,
		TargetHandle: "input",
	})
	if err != nil {
		return err
	}

	if err := a.engine.Initialize(ctx, s); err != nil {
		return err
	}

	a.logger.Info("activating trigger", "node", trigger.ID)
	a.engine.SetActivation(trigger.ID, true)
	time.Sleep(2 * a.frameInterval)
	a.printActivation(ctx)
	if v, ok := a.NodeValue(s, view.ID); ok {
		fmt.Fprintf(a.outW, "%s\tvalue=%q\n", view.ID, v)
	}

	a.logger.Info("deactivating trigger", "node", trigger.ID)
	a.engine.SetActivation(trigger.ID, false)
	time.Sleep(2 * a.frameInterval)
	a.printActivation(ctx)

	a.logger.Debug("app run finished")
	return nil
}

// printActivation writes the committed activation state to the output.
func (a *App) printActivation(ctx context.Context) {
	snapshot := a.store.Snapshot(ctx)
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(a.outW, "%s\tactive=%t\n", id, snapshot[id])
	}
}
