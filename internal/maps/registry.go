package maps

import (
	"fmt"
	"sort"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

var registry = map[string]func() dynamo.Map{
	"guillot":       func() dynamo.Map { return NewGuillot() },
	"pierrehumbert": func() dynamo.Map { return NewPierrehumbert() },
}

// Get returns the map registered under name.
func Get(name string) (dynamo.Map, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown map: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered maps in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
