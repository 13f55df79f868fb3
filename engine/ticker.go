package engine

import "github.com/fantop/fantop/model"

// Ticker abstracts a data source that can produce evaluations.
type Ticker interface {
	Tick() *model.Evaluation
	Base() *Engine
}

// Base returns itself for the default engine ticker.
func (e *Engine) Base() *Engine {
	return e
}
