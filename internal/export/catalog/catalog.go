// Package catalog assembles the process-wide adapter registry. It is the
// only place that knows every concrete adapter; callers receive the
// immutable registry by injection and stay decoupled from the vendors.
package catalog

import (
	"sort"

	"stagehand/internal/export"
	"stagehand/internal/export/behringer"
	"stagehand/internal/export/yamaha"
)

// New builds the registry of every supported desk. Built once at startup;
// lookups afterwards are lock-free.
func New() (*export.Registry, error) {
	var entries []export.Entry

	manufacturers := make([]string, 0, len(behringer.Models))
	for manufacturer := range behringer.Models {
		manufacturers = append(manufacturers, manufacturer)
	}
	sort.Strings(manufacturers)
	for _, manufacturer := range manufacturers {
		for _, model := range behringer.Models[manufacturer] {
			manufacturer, model := manufacturer, model
			entries = append(entries, export.Entry{
				Manufacturer: manufacturer,
				Model:        model,
				Factory:      func() export.Adapter { return behringer.New(manufacturer, model) },
			})
		}
	}

	yamahaModels := make([]string, 0, len(yamaha.Specs))
	for model := range yamaha.Specs {
		yamahaModels = append(yamahaModels, model)
	}
	sort.Strings(yamahaModels)
	for _, model := range yamahaModels {
		model := model
		entries = append(entries, export.Entry{
			Manufacturer: "Yamaha",
			Model:        model,
			Factory:      func() export.Adapter { return yamaha.New(model) },
		})
	}

	return export.NewRegistry(entries...)
}
