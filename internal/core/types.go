package core

import (
	"context"
	"sort"
)

// Module is the capability set a biology module offers the scheduler.
type Module interface {
	Name() string
	Initialize(ctx context.Context) error
	// Step advances the module by one scheduler tick of length dt. The unit of
	// dt is the scheduler's; modules convert it through a TimeScale.
	Step(ctx context.Context, dt float64) error
	Parameters() ParameterSnapshot
	FloatParameterSetter
}

// Factory constructs a Module using an optional configuration map.
type Factory func(cfg map[string]string) (Module, error)

var modules = map[string]Factory{}

// Register adds a module factory under the provided name. The module set is
// fixed at link time; registration happens from package init functions.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	modules[name] = f
}

// Modules exposes the registry of available module factories.
func Modules() map[string]Factory {
	return modules
}

// ModuleNames returns the registered names in sorted order.
func ModuleNames() []string {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
