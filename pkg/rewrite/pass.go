package rewrite

import (
	"context"
	"log/slog"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Pass is one traversal of one compilation unit by one recipe. Visitors
// reach the traversal state and the deferred action queue through it.
type Pass struct {
	ctx     context.Context //nolint:containedctx // A pass lives for one synchronous traversal.
	recipe  Recipe
	visitor Visitor
	source  *tree.CompilationUnit
	cursor  *Cursor
	exec    *ExecutionContext
	queue   *Queue
	logger  *slog.Logger
}

func newPass(ctx context.Context, recipe Recipe, source *tree.CompilationUnit, exec *ExecutionContext, logger *slog.Logger) *Pass {
	return &Pass{
		ctx:     ctx,
		recipe:  recipe,
		visitor: recipe.Visitor(),
		source:  source,
		exec:    exec,
		queue:   NewQueue(),
		logger:  logger.With("recipe", recipe.Name()),
	}
}

// Cursor returns the cursor positioned on the node being visited.
func (p *Pass) Cursor() *Cursor {
	return p.cursor
}

// Source returns the compilation unit as it was when the pass started.
func (p *Pass) Source() *tree.CompilationUnit {
	return p.source
}

// Context returns the context of the run.
func (p *Pass) Context() context.Context {
	return p.ctx
}

// Execution returns the context shared by every pass of the run.
func (p *Pass) Execution() *ExecutionContext {
	return p.exec
}

// Logger returns the run logger tagged with the recipe name.
func (p *Pass) Logger() *slog.Logger {
	return p.logger
}

// Recipe returns the recipe driving the pass.
func (p *Pass) Recipe() Recipe {
	return p.recipe
}

// Enqueue adds a deferred action to the pass queue.
func (p *Pass) Enqueue(action Action) {
	p.queue.Enqueue(action)
}

// AddImport schedules an unconditional type import.
func (p *Pass) AddImport(fqcn string) {
	p.Enqueue(AddImport{Type: fqcn})
}

// MaybeAddImport schedules a type import applied only if the final unit
// refers to the type.
func (p *Pass) MaybeAddImport(fqcn string) {
	p.Enqueue(AddImport{Type: fqcn, OnlyIfReferenced: true})
}

// AddStaticImport schedules an unconditional static member import.
func (p *Pass) AddStaticImport(fqcn, member string) {
	p.Enqueue(AddImport{Type: fqcn, Member: member, Static: true})
}

// MaybeRemoveImport schedules removal of a type import that the final unit
// no longer uses.
func (p *Pass) MaybeRemoveImport(fqcn string) {
	p.Enqueue(RemoveImport{Type: fqcn, IfUnused: true})
}

// MaybeRemoveStaticImport schedules removal of a static member import that
// the final unit no longer uses.
func (p *Pass) MaybeRemoveStaticImport(fqcn, member string) {
	p.Enqueue(RemoveImport{Type: fqcn, Member: member, Static: true, IfUnused: true})
}

// DoAfterVisit schedules recipe to run over the unit once this pass ends.
func (p *Pass) DoAfterVisit(recipe Recipe) {
	p.Enqueue(ScheduleRecipe{Recipe: recipe})
}
