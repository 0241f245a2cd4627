package rewrite

import "github.com/Sumatoshi-tech/codemod/pkg/tree"

// DefaultMaxChainDepth bounds how deep follow-up recipes may nest.
const DefaultMaxChainDepth = 4

// Recipe is a named, composable transformation. Visitor may return nil for
// recipes that only group or schedule other recipes.
type Recipe interface {
	Name() string
	Description() string
	Visitor() Visitor
}

// Applicable is implemented by recipes with a cheap pre-check. A recipe whose
// pre-check fails is skipped without a traversal; its declared follow-ups
// still run.
type Applicable interface {
	Applicable(cu *tree.CompilationUnit) bool
}

// FollowUps is implemented by recipes that always run other recipes after
// themselves.
type FollowUps interface {
	FollowUps() []Recipe
}

// ChainLimited is implemented by recipes that override
// [DefaultMaxChainDepth] for runs they start.
type ChainLimited interface {
	MaxChainDepth() int
}

// Keyed is implemented by recipes whose scheduling is idempotent: within one
// pass a recipe is scheduled at most once per key.
type Keyed interface {
	Key() string
}

// Composite runs a list of recipes in order.
type Composite struct {
	name        string
	description string
	recipes     []Recipe
}

// NewComposite groups recipes under one name.
func NewComposite(name, description string, recipes ...Recipe) *Composite {
	return &Composite{name: name, description: description, recipes: recipes}
}

// Name implements Recipe.
func (c *Composite) Name() string { return c.name }

// Description implements Recipe.
func (c *Composite) Description() string { return c.description }

// Visitor implements Recipe. A composite has no traversal of its own.
func (c *Composite) Visitor() Visitor { return nil }

// FollowUps implements FollowUps.
func (c *Composite) FollowUps() []Recipe { return c.recipes }
