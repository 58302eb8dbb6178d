package game

import (
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
)

type ItemData struct {
	Color color.RGBA
	Size  float64
	Mass  float64
}

// ItemCatalog is the singleton listing every item that can exist in the world.
type ItemCatalog struct {
	items map[string]ItemData
	names []string
}

func NewItemCatalog() ItemCatalog {
	return ItemCatalog{items: make(map[string]ItemData)}
}

// CatalogFromConfig builds the catalog from the configured items.
func CatalogFromConfig(items []config.Item) (ItemCatalog, error) {
	catalog := NewItemCatalog()
	for _, item := range items {
		c, err := config.ParseColor(item.Color)
		if err != nil {
			return catalog, errors.Wrapf(err, "item %s", item.Name)
		}
		catalog.Add(item.Name, ItemData{Color: c, Size: item.Size, Mass: item.Mass})
	}
	return catalog, nil
}

// Add registers or replaces an item.
func (c *ItemCatalog) Add(name string, data ItemData) {
	if _, exists := c.items[name]; !exists {
		c.names = append(c.names, name)
		sort.Strings(c.names)
	}
	c.items[name] = data
}

func (c *ItemCatalog) Get(name string) (ItemData, bool) {
	data, ok := c.items[name]
	return data, ok
}

// Names returns the item names in sorted order.
func (c *ItemCatalog) Names() []string {
	return c.names
}

// Lookup returns the item data or an error that suggests the closest known name.
func (c *ItemCatalog) Lookup(name string) (ItemData, error) {
	if data, ok := c.items[name]; ok {
		return data, nil
	}
	if s := config.Suggest(name, c.names); s != "" {
		return ItemData{}, errors.Errorf("unknown item %q (did you mean %q?)", name, s)
	}
	return ItemData{}, errors.Errorf("unknown item %q", name)
}

// NewItemBody creates the physics body for a catalog item centred on pos.
func NewItemBody(world *physics.World, data ItemData, pos cp.Vector) physics.Body {
	return world.NewBox(physics.Dynamic, pos, data.Size, data.Size, data.Mass)
}

func itemComponents(name string, data ItemData) []any {
	return []any{
		Item{Name: name},
		Interactable{Type: InteractItem},
		Sprite{Color: data.Color, Width: data.Size, Height: data.Size, Layer: 2},
	}
}

// SpawnItem immediately spawns a dynamic item at pos.
func SpawnItem(storage *ecs.Storage, world *physics.World, catalog *ItemCatalog, pos cp.Vector, name string) (ecs.EntityId, error) {
	data, err := catalog.Lookup(name)
	if err != nil {
		return 0, err
	}
	return physics.Spawn(storage, NewItemBody(world, data, pos), itemComponents(name, data)...), nil
}

// SpawnItemDeferred queues the spawn of an item on the frame's commands. The body joins
// the simulation right away; the entity exists after the frame's flush.
func SpawnItemDeferred(frame *ecs.UpdateFrame, world *physics.World, catalog *ItemCatalog, pos cp.Vector, name string) error {
	data, err := catalog.Lookup(name)
	if err != nil {
		return err
	}
	physics.SpawnDeferred(frame, NewItemBody(world, data, pos), itemComponents(name, data)...)
	return nil
}
