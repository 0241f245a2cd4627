package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
)

// ErrInvalidSet is returned for a malformed --set value.
var ErrInvalidSet = errors.New("invalid --set value, want [recipe:]key=value")

// ErrUnclaimedSet is returned when a --set value targets no selected recipe.
var ErrUnclaimedSet = errors.New("no selected recipe accepts option")

const (
	recipeSeparator = ":"
	valueSeparator  = "="
	nestedSeparator = "."
)

// optionSet is one parsed --set flag.
type optionSet struct {
	recipe string
	key    string
	nested string
	value  string
}

func parseSet(raw string) (optionSet, error) {
	assignment, value, ok := strings.Cut(raw, valueSeparator)
	if !ok {
		return optionSet{}, fmt.Errorf("%w: %q", ErrInvalidSet, raw)
	}

	var set optionSet

	// Recipe names contain dots, so the recipe is split off with a colon.
	if recipe, rest, scoped := strings.Cut(assignment, recipeSeparator); scoped {
		set.recipe = strings.TrimSpace(recipe)
		if set.recipe == "" {
			return optionSet{}, fmt.Errorf("%w: %q", ErrInvalidSet, raw)
		}

		assignment = rest
	}

	set.key, set.nested, _ = strings.Cut(strings.TrimSpace(assignment), nestedSeparator)
	set.value = strings.TrimSpace(value)

	if set.key == "" {
		return optionSet{}, fmt.Errorf("%w: %q", ErrInvalidSet, raw)
	}

	return set, nil
}

// mergeSets layers --set values over the configured options. An unscoped
// key goes to every selected recipe that declares it; "key.sub=value"
// assigns into a map option.
func mergeSets(
	registry *recipes.Registry, selected []string, base map[string]map[string]any, rawSets []string,
) (map[string]map[string]any, error) {
	merged := make(map[string]map[string]any, len(base))

	for name, options := range base {
		copied := make(map[string]any, len(options))
		for key, value := range options {
			copied[key] = value
		}

		merged[name] = copied
	}

	for _, raw := range rawSets {
		set, err := parseSet(raw)
		if err != nil {
			return nil, err
		}

		var targets []string

		switch {
		case set.recipe == "":
			targets = claimants(registry, selected, set.key)
		case slices.Contains(selected, set.recipe):
			targets = []string{set.recipe}
		}

		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnclaimedSet, set.key)
		}

		for _, name := range targets {
			options := merged[name]
			if options == nil {
				options = make(map[string]any)
				merged[name] = options
			}

			assign(options, set)
		}
	}

	return merged, nil
}

func claimants(registry *recipes.Registry, selected []string, key string) []string {
	var names []string

	for _, name := range selected {
		descriptor, ok := registry.Descriptor(name)
		if !ok {
			continue
		}

		for _, option := range descriptor.Options {
			if strings.EqualFold(option, key) {
				names = append(names, name)

				break
			}
		}
	}

	return names
}

// assign stores set in options. Config keys arrive lowercased, so an
// existing key differing only in case is replaced.
func assign(options map[string]any, set optionSet) {
	var existing any

	for key, value := range options {
		if strings.EqualFold(key, set.key) {
			existing = value

			delete(options, key)
		}
	}

	if set.nested == "" {
		options[set.key] = set.value

		return
	}

	nested := make(map[string]any)
	if previous, ok := existing.(map[string]any); ok {
		for key, value := range previous {
			nested[key] = value
		}
	}

	nested[set.nested] = set.value
	options[set.key] = nested
}
