package rewrite

import (
	"github.com/Sumatoshi-tech/codemod/pkg/imports"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Action is a side effect deferred until the end of a pass.
type Action interface {
	isAction()
}

// AddImport imports a type, or a static member when Static is set. With
// OnlyIfReferenced the import is added only if the final unit refers to it.
type AddImport struct {
	Type             string
	Member           string
	Static           bool
	OnlyIfReferenced bool
}

// RemoveImport removes a type or static member import. With IfUnused the
// import survives while the final unit still refers to it.
type RemoveImport struct {
	Type     string
	Member   string
	Static   bool
	IfUnused bool
}

// ScheduleRecipe runs a follow-up recipe after the current pass.
type ScheduleRecipe struct {
	Recipe Recipe
}

func (AddImport) isAction()      {}
func (RemoveImport) isAction()   {}
func (ScheduleRecipe) isAction() {}

func (a AddImport) spec() imports.Spec {
	return imports.Spec{Type: a.Type, Member: a.Member, Static: a.Static}
}

func (a RemoveImport) spec() imports.Spec {
	return imports.Spec{Type: a.Type, Member: a.Member, Static: a.Static}
}

// Queue collects the deferred actions of one pass. Duplicate imports
// collapse into one entry; when an import is requested both conditionally
// and unconditionally the unconditional request wins. Recipes implementing
// [Keyed] are scheduled at most once per key.
type Queue struct {
	adds      []AddImport
	addIndex  map[imports.Spec]int
	removes   []RemoveImport
	removeIdx map[imports.Spec]int
	schedules []Recipe
	keys      map[string]bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		addIndex:  make(map[imports.Spec]int),
		removeIdx: make(map[imports.Spec]int),
		keys:      make(map[string]bool),
	}
}

// Enqueue records an action.
func (q *Queue) Enqueue(action Action) {
	switch typed := action.(type) {
	case AddImport:
		spec := typed.spec()
		if idx, ok := q.addIndex[spec]; ok {
			q.adds[idx].OnlyIfReferenced = q.adds[idx].OnlyIfReferenced && typed.OnlyIfReferenced

			return
		}

		q.addIndex[spec] = len(q.adds)
		q.adds = append(q.adds, typed)
	case RemoveImport:
		spec := typed.spec()
		if idx, ok := q.removeIdx[spec]; ok {
			q.removes[idx].IfUnused = q.removes[idx].IfUnused && typed.IfUnused

			return
		}

		q.removeIdx[spec] = len(q.removes)
		q.removes = append(q.removes, typed)
	case ScheduleRecipe:
		if typed.Recipe == nil {
			return
		}

		if keyed, ok := typed.Recipe.(Keyed); ok {
			key := keyed.Key()
			if q.keys[key] {
				return
			}

			q.keys[key] = true
		}

		q.schedules = append(q.schedules, typed.Recipe)
	}
}

// Len returns the number of distinct pending actions.
func (q *Queue) Len() int {
	return len(q.adds) + len(q.removes) + len(q.schedules)
}

// ApplyAll applies the import actions to cu, additions first and removals
// last, and returns the scheduled recipes in the order they were enqueued.
func (q *Queue) ApplyAll(cu *tree.CompilationUnit) (*tree.CompilationUnit, []Recipe, error) {
	if cu == nil {
		return nil, nil, Invariant(nil, "deferred actions applied to a nil compilation unit")
	}

	out := cu

	for _, add := range q.adds {
		out = imports.Add(out, add.spec(), add.OnlyIfReferenced)
	}

	for _, remove := range q.removes {
		out = imports.Remove(out, remove.spec(), remove.IfUnused)
	}

	return out, q.schedules, nil
}
