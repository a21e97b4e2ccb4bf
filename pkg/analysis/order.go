package analysis

import (
	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// ProcessingOrder returns the bottom-up module batches: deepest level first,
// level 0 last, empty levels skipped. Every descendant of a module appears
// in an earlier batch, so downstream generation can rely on child outputs
// existing before the parent is processed.
func (a *Analyzer) ProcessingOrder() []model.ProcessingLevel {
	order := make([]model.ProcessingLevel, 0)

	for level := a.treeIndex.MaxLevel(); level >= 0; level-- {
		modules := a.treeIndex.ModulesAtLevel(level)
		if len(modules) == 0 {
			continue
		}
		order = append(order, model.ProcessingLevel{
			Level:   level,
			Modules: modules,
		})
	}

	return order
}
