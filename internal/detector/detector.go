// Package detector identifies which e-learning specification a content
// package conforms to by probing its files through a priority-ordered
// chain of plugins.
package detector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lmsforge/packlint/internal/domain"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

// ErrNoMatch indicates no registered plugin recognized the package.
var ErrNoMatch = errors.New("no parser registered for detected module type")

// Plugin probes a package for one family of module types. Detect returns
// ok=false when the package is not this plugin's format; a probe that fails
// on I/O must return the error rather than ok=false, so real problems are
// not masked as "not this format".
type Plugin interface {
	Name() string
	Priority() int
	Detect(pkg pkgfs.Package) (moduleType domain.ModuleType, ok bool, err error)
}

// Detector runs plugins from highest to lowest priority and short-circuits
// on the first positive detection. The plugin set is fixed at construction;
// ties in priority keep registration order.
type Detector struct {
	plugins []Plugin
}

// New creates a Detector over the given plugins, sorted by descending
// priority with stable order for equal priorities.
func New(plugins ...Plugin) *Detector {
	sorted := make([]Plugin, len(plugins))
	copy(sorted, plugins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Detector{plugins: sorted}
}

// Default returns a Detector with the standard plugin set.
func Default() *Detector {
	return New(
		ScormPlugin{},
		Cmi5Plugin{},
		AiccPlugin{},
		XapiPlugin{},
	)
}

// Detect returns the module type of pkg, or an error naming the inspected
// path when no plugin matches or a plugin's probe fails.
func (d *Detector) Detect(pkg pkgfs.Package) (domain.ModuleType, error) {
	for _, plugin := range d.plugins {
		moduleType, ok, err := plugin.Detect(pkg)
		if err != nil {
			return "", fmt.Errorf("detecting module type of %s (%s plugin): %w", pkg.RootPath(), plugin.Name(), err)
		}
		if ok {
			return moduleType, nil
		}
	}
	return "", fmt.Errorf("detecting module type of %s: %w", pkg.RootPath(), ErrNoMatch)
}
