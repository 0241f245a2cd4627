// Package recipes is the catalogue of named recipes. It builds configured
// recipe instances from option maps such as those read from .codemod.yaml.
package recipes

import (
	"errors"
	"fmt"
	pathpkg "path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
)

// Registry errors.
var (
	ErrUnknownRecipe   = errors.New("unknown recipe")
	ErrDuplicateRecipe = errors.New("duplicate recipe")
	ErrInvalidOptions  = errors.New("invalid recipe options")
	ErrInvalidPattern  = errors.New("invalid recipe pattern")
	ErrInvalidPair     = errors.New("want old=new")
)

const (
	optionTag     = "mapstructure"
	pairSeparator = "="
)

// Factory returns a new, unconfigured recipe. Its exported fields tagged with
// mapstructure are the recipe's options.
type Factory func() rewrite.Recipe

// Descriptor is the catalogue entry of a recipe.
type Descriptor struct {
	Name        string
	Description string
	// Options lists the option keys the recipe accepts.
	Options []string
}

type entry struct {
	descriptor Descriptor
	factory    Factory
}

// Registry stores recipe factories with deterministic ordering.
type Registry struct {
	ordered  []Descriptor
	index    map[string]entry
	validate *validator.Validate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:    make(map[string]entry),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register adds the recipe produced by factory under its own name.
func (r *Registry) Register(factory Factory) error {
	sample := factory()
	descriptor := Descriptor{
		Name:        sample.Name(),
		Description: sample.Description(),
		Options:     optionKeys(reflect.TypeOf(sample)),
	}

	if _, exists := r.index[descriptor.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, descriptor.Name)
	}

	r.index[descriptor.Name] = entry{descriptor: descriptor, factory: factory}
	r.ordered = append(r.ordered, descriptor)

	return nil
}

// All returns all descriptors in registration order.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, len(r.ordered))
	copy(descriptors, r.ordered)

	return descriptors
}

// Descriptor returns the catalogue entry for name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	found, ok := r.index[name]

	return found.descriptor, ok
}

// Build returns the recipe registered as name configured with options.
// Options are decoded with weak typing, so "true" configures a bool; unknown
// keys and failed validation are reported as [ErrInvalidOptions].
func (r *Registry) Build(name string, options map[string]any) (rewrite.Recipe, error) {
	found, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, name)
	}

	recipe := found.factory()

	if len(options) > 0 {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           recipe,
			TagName:          optionTag,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Squash:           true,
			DecodeHook:       mapstructure.DecodeHookFuncType(pairsToMapHook),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, name, err)
		}

		err = decoder.Decode(options)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, name, err)
		}
	}

	if reflect.Indirect(reflect.ValueOf(recipe)).Kind() == reflect.Struct {
		err := r.validate.Struct(recipe)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, name, err)
		}
	}

	return recipe, nil
}

// BuildAll builds the recipes selected by patterns, in selection order, each
// with its entry from options.
func (r *Registry) BuildAll(patterns []string, options map[string]map[string]any) ([]rewrite.Recipe, error) {
	names, err := r.ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	built := make([]rewrite.Recipe, 0, len(names))

	for _, name := range names {
		recipe, buildErr := r.Build(name, options[name])
		if buildErr != nil {
			return nil, buildErr
		}

		built = append(built, recipe)
	}

	return built, nil
}

// ExpandPatterns expands exact names and glob patterns against registered
// recipe names. Duplicates are dropped; the first occurrence wins.
func (r *Registry) ExpandPatterns(patterns []string) ([]string, error) {
	selected := make([]string, 0, len(r.ordered))
	seen := make(map[string]bool, len(r.ordered))

	for _, rawPattern := range patterns {
		names, err := r.resolvePattern(strings.TrimSpace(rawPattern))
		if err != nil {
			return nil, err
		}

		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				selected = append(selected, name)
			}
		}
	}

	return selected, nil
}

func (r *Registry) resolvePattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownRecipe)
	}

	if !strings.ContainsAny(pattern, "*?[") {
		if _, exists := r.index[pattern]; !exists {
			if suggestion := r.Suggest(pattern); suggestion != "" {
				return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownRecipe, pattern, suggestion)
			}

			return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, pattern)
		}

		return []string{pattern}, nil
	}

	matched := make([]string, 0, len(r.ordered))

	for _, descriptor := range r.ordered {
		isMatch, err := pathpkg.Match(pattern, descriptor.Name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}

		if isMatch {
			matched = append(matched, descriptor.Name)
		}
	}

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, pattern)
	}

	return matched, nil
}

// pairsToMapHook lets a map[string]string option be written as a list of
// "old=new" strings. Config keys are lowercased on load, list values are not.
func pairsToMapHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to != reflect.TypeFor[map[string]string]() {
		return data, nil
	}

	items := reflect.ValueOf(data)
	pairs := make(map[string]string, items.Len())

	for idx := range items.Len() {
		item := fmt.Sprint(items.Index(idx).Interface())

		old, replacement, ok := strings.Cut(item, pairSeparator)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, item)
		}

		pairs[strings.TrimSpace(old)] = strings.TrimSpace(replacement)
	}

	return pairs, nil
}

// optionKeys lists the mapstructure keys of a recipe struct, descending into
// embedded structs.
func optionKeys(recipeType reflect.Type) []string {
	for recipeType.Kind() == reflect.Pointer {
		recipeType = recipeType.Elem()
	}

	if recipeType.Kind() != reflect.Struct {
		return nil
	}

	var keys []string

	for idx := range recipeType.NumField() {
		field := recipeType.Field(idx)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			keys = append(keys, optionKeys(field.Type)...)

			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get(optionTag), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}

	return keys
}
