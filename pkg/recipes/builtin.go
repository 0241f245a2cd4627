package recipes

//go:generate go run ../../tools/schemagen -o ../../docs/schemas

import (
	"github.com/Sumatoshi-tech/codemod/pkg/recipes/java"
	"github.com/Sumatoshi-tech/codemod/pkg/recipes/spring"
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
)

// Builtin returns the factories of the recipes shipped with codemod.
func Builtin() []Factory {
	return []Factory{
		func() rewrite.Recipe { return &spring.ConstructorInjection{} },
		func() rewrite.Recipe { return spring.NewMigrateErrorPropertiesIncludeStackTraceConstants() },
		func() rewrite.Recipe { return &java.RenameConstant{} },
	}
}

// Default returns a registry holding the builtin recipes.
func Default() *Registry {
	registry := NewRegistry()

	for _, factory := range Builtin() {
		err := registry.Register(factory)
		if err != nil {
			// Builtin names are distinct.
			panic(err)
		}
	}

	return registry
}
