package session

import (
	"github.com/BalajiAXG/BookMark-Repo/internal/collection"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
)

// Reconciler folds remote change events into local state.
// Implementations must tolerate at-least-once delivery: applying the
// same event twice leaves the collection identical to applying it once.
type Reconciler interface {
	Apply(ev realtime.Event)
}

// FoldReconciler applies events incrementally to a collection.
type FoldReconciler struct {
	coll *collection.Collection
}

// NewFoldReconciler creates an incremental reconciler over coll.
func NewFoldReconciler(coll *collection.Collection) *FoldReconciler {
	return &FoldReconciler{coll: coll}
}

// Apply folds one event into the collection.
//
//   - insert: ignored when the ID is already present. This absorbs the
//     duplicate between a confirmed local add and its echoed event.
//   - update: replaces the record in full; an unknown ID is inserted,
//     covering an update that outran its insert.
//   - delete: removing an absent ID is a no-op.
func (r *FoldReconciler) Apply(ev realtime.Event) {
	switch ev.Kind {
	case realtime.EventInsert:
		if _, ok := r.coll.Get(ev.Record.ID); ok {
			return
		}
		r.coll.Upsert(ev.Record)
	case realtime.EventUpdate:
		r.coll.Upsert(ev.Record)
	case realtime.EventDelete:
		r.coll.Delete(ev.Record.ID)
	}
}

// RefetchReconciler discards incremental reasoning: any event triggers
// a full collection refetch replacing local state wholesale. Less
// efficient than folding, immune to ordering and duplication entirely.
// The dashboard and profile views run in this mode.
type RefetchReconciler struct {
	refetch func()
}

// NewRefetchReconciler creates a reconciler calling refetch on every
// event.
func NewRefetchReconciler(refetch func()) *RefetchReconciler {
	return &RefetchReconciler{refetch: refetch}
}

// Apply triggers a full refetch regardless of event kind.
func (r *RefetchReconciler) Apply(realtime.Event) {
	r.refetch()
}
