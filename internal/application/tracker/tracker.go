package tracker

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
)

// CompletedPath is a persisted record of a path the user marked done: a
// generated id, the terminal ship reached, and a frozen snapshot of the path
// as it was priced at the time.
type CompletedPath struct {
	ID   string
	Ship *ship.Ship
	Path *planner.CompletePath
}

// Repository persists completed paths. Implemented in the adapter layer.
type Repository interface {
	Save(ctx context.Context, cp *CompletedPath) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	// LoadAll returns every stored record; malformed rows are logged and
	// skipped by the implementation, never surfaced as an error.
	LoadAll(ctx context.Context) ([]*CompletedPath, error)
}

// Tracker records which paths the user has completed and derives the
// completed-edge index consumed by display checks and hangar accounting.
//
// All mutation is synchronous: the persisted store is written immediately
// after each change. A write failure is logged and the in-memory state kept;
// the session stays consistent and the unsaved change is lost on reload.
type Tracker struct {
	repo      Repository
	completed []*CompletedPath
	index     *EdgeIndex
}

// NewTracker creates a tracker over the given repository
func NewTracker(repo Repository) *Tracker {
	return &Tracker{
		repo:  repo,
		index: RebuildIndex(nil),
	}
}

// Load reads the persisted completed paths at startup. A failing or
// malformed store is logged and treated as empty rather than failing.
func (t *Tracker) Load(ctx context.Context) {
	completed, err := t.repo.LoadAll(ctx)
	if err != nil {
		log.Printf("tracker: failed to load completed paths, starting empty: %v", err)
		completed = nil
	}
	t.completed = completed
	t.index = RebuildIndex(t.completed)
}

// MarkCompleted appends a new completed record with a generated id,
// rebuilds the index, and persists.
func (t *Tracker) MarkCompleted(ctx context.Context, path *planner.CompletePath, terminal *ship.Ship) *CompletedPath {
	cp := &CompletedPath{
		ID:   uuid.NewString(),
		Ship: terminal,
		Path: path,
	}
	t.completed = append(t.completed, cp)
	t.index = RebuildIndex(t.completed)

	if err := t.repo.Save(ctx, cp); err != nil {
		log.Printf("tracker: failed to persist completed path %s: %v", cp.ID, err)
	}
	return cp
}

// Unmark removes a completed record by id, rebuilds the index, and persists
func (t *Tracker) Unmark(ctx context.Context, id string) {
	for i, cp := range t.completed {
		if cp.ID == id {
			t.completed = append(t.completed[:i], t.completed[i+1:]...)
			break
		}
	}
	t.index = RebuildIndex(t.completed)

	if err := t.repo.Delete(ctx, id); err != nil {
		log.Printf("tracker: failed to delete completed path %s: %v", id, err)
	}
}

// Clear removes every completed record and the persisted store entry
func (t *Tracker) Clear(ctx context.Context) {
	t.completed = nil
	t.index = RebuildIndex(nil)

	if err := t.repo.DeleteAll(ctx); err != nil {
		log.Printf("tracker: failed to clear completed paths: %v", err)
	}
}

// Completed returns the current completed-path list
func (t *Tracker) Completed() []*CompletedPath {
	return t.completed
}

// IsEdgeCompleted is an O(1) lookup against the derived index
func (t *Tracker) IsEdgeCompleted(fromShipID, toShipID string) bool {
	return t.index.IsEdgeCompleted(fromShipID, toShipID)
}

// ConsumedCount reports hangar certificate consumption for the pair.
// Wire this into the pricing context's HangarConsumed hook.
func (t *Tracker) ConsumedCount(fromShipID, toShipID string) int {
	return t.index.ConsumedCount(fromShipID, toShipID)
}

// IsPathCompleted checks whether an equivalent path is already completed.
// Equivalence is structural: the same ship-id sequence, not object identity.
// Returns the matching record's id so the caller can unmark it.
func (t *Tracker) IsPathCompleted(path *planner.CompletePath) (bool, string) {
	want := path.ShipIDs()
	for _, cp := range t.completed {
		if cp.Path == nil {
			continue
		}
		if equalIDs(cp.Path.ShipIDs(), want) {
			return true, cp.ID
		}
	}
	return false, ""
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
