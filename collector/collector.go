// Package collector reads controller inputs from Linux hwmon sysfs
// attributes, or from a synthetic plant model when no hardware is
// available. Each collector fills the fields of a model.Sample it owns.
package collector

import "github.com/fantop/fantop/model"

// Collector is the interface for all sensor collectors.
type Collector interface {
	Name() string
	Collect(s *model.Sample) error
}

// Registry holds all registered collectors.
type Registry struct {
	collectors []Collector
}

// NewRegistry creates a registry from the given collectors.
func NewRegistry(collectors ...Collector) *Registry {
	return &Registry{collectors: collectors}
}

// Add registers an additional collector.
func (r *Registry) Add(c Collector) {
	r.collectors = append(r.collectors, c)
}

// Names returns the registered collector names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.collectors))
	for i, c := range r.collectors {
		names[i] = c.Name()
	}
	return names
}

// CollectAll runs all collectors against the sample. Failures are
// accumulated, not fatal: a sample with a dead sensor still feeds the
// controller, carrying zero for the missing input.
func (r *Registry) CollectAll(s *model.Sample) []error {
	var errs []error
	for _, c := range r.collectors {
		if err := c.Collect(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
