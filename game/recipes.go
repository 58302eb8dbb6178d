package game

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// RecipeBook maps sets of ingredients to the item they produce. Matching ignores order and
// duplicates: red+green, green+red and red+red+green all name the same set.
type RecipeBook struct {
	outputs     map[string]string
	ingredients mapset.Set[string]
}

func NewRecipeBook() RecipeBook {
	return RecipeBook{
		outputs:     make(map[string]string),
		ingredients: mapset.New[string](),
	}
}

// DefaultRecipes returns the built-in colour mixing recipes.
func DefaultRecipes() RecipeBook {
	book := NewRecipeBook()
	book.Add([]string{"red", "green"}, "yellow")
	book.Add([]string{"red", "blue"}, "violet")
	book.Add([]string{"green", "blue"}, "turkeu")
	book.Add([]string{"red", "green", "blue"}, "white")
	return book
}

func canonical(items []string) (string, mapset.Set[string]) {
	set := mapset.New[string]()
	for _, item := range items {
		set.Put(item)
	}

	names := make([]string, 0, set.Size())
	set.Each(func(name string) {
		names = append(names, name)
	})
	sort.Strings(names)

	// length-prefixed so no item name can spell another set
	var key strings.Builder
	for _, name := range names {
		key.WriteString(strconv.Itoa(len(name)))
		key.WriteByte(':')
		key.WriteString(name)
	}
	return key.String(), set
}

// Add registers a recipe, replacing any recipe with the same ingredient set.
func (b *RecipeBook) Add(ingredients []string, output string) {
	if len(ingredients) == 0 {
		return
	}
	key, set := canonical(ingredients)
	b.outputs[key] = output
	set.Each(func(name string) {
		b.ingredients.Put(name)
	})
}

// Match returns the output for the given items. Empty input never matches.
func (b *RecipeBook) Match(items []string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	key, _ := canonical(items)
	output, ok := b.outputs[key]
	return output, ok
}

// Ingredients lists every item used by some recipe, sorted.
func (b *RecipeBook) Ingredients() []string {
	names := make([]string, 0, b.ingredients.Size())
	b.ingredients.Each(func(name string) {
		names = append(names, name)
	})
	sort.Strings(names)
	return names
}

// Uses reports whether the item is an ingredient of any recipe.
func (b *RecipeBook) Uses(item string) bool {
	return b.ingredients.Has(item)
}

func (b *RecipeBook) Len() int {
	return len(b.outputs)
}
