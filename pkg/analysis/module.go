package analysis

import (
	"fmt"
	"sort"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// AnalyzeModule inspects every dependency edge touching the module's
// components and produces the internal/external breakdown plus the
// complexity block. Cross-module edges are grouped by the peer module;
// components without a module group under the empty path.
func (a *Analyzer) AnalyzeModule(path string) model.ModuleAnalysis {
	result := emptyModuleAnalysis(path)

	m, ok := a.treeIndex.Modules[path]
	if !ok {
		result.Error = fmt.Sprintf("module not found: %s", path)
		return result
	}

	externalDeps := make(map[string][]model.Relationship)
	externalDependents := make(map[string][]model.Relationship)

	for _, id := range m.Components {
		c, exists := a.components[id]
		if !exists {
			continue
		}

		for _, targetID := range c.DependsOn {
			target, found := a.components[targetID]
			if !found {
				continue
			}
			rel := model.Relationship{From: id, To: targetID}
			if target.Module == path {
				result.InternalDependencies = append(result.InternalDependencies, rel)
			} else {
				externalDeps[target.Module] = append(externalDeps[target.Module], rel)
			}
		}

		for _, sourceID := range c.DependedBy {
			source, found := a.components[sourceID]
			if !found {
				continue
			}
			if source.Module == path {
				continue // counted on the dependency side
			}
			rel := model.Relationship{From: sourceID, To: id}
			externalDependents[source.Module] = append(externalDependents[source.Module], rel)
		}
	}

	result.ExternalDependencies = groupRelations(externalDeps)
	result.ExternalDependents = groupRelations(externalDependents)

	// Every edge touching the module counts once: internal edges forward
	// only, external edges on whichever side crosses the boundary.
	internal := len(result.InternalDependencies)
	external := 0
	for _, group := range result.ExternalDependencies {
		external += len(group.Relationships)
	}
	for _, group := range result.ExternalDependents {
		external += len(group.Relationships)
	}

	result.Complexity = model.ModuleComplexity{
		ComponentCount:    len(m.Components),
		InternalEdgeCount: internal,
		ExternalEdgeCount: external,
		CohesionScore:     cohesion(internal, external),
	}

	return result
}

// cohesion is the share of edges that stay inside the module, 0.0 when the
// module touches no edges.
func cohesion(internal, external int) float64 {
	total := internal + external
	if total == 0 {
		return 0.0
	}
	return float64(internal) / float64(total)
}

func groupRelations(byModule map[string][]model.Relationship) []model.ModuleRelation {
	paths := make([]string, 0, len(byModule))
	for path := range byModule {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make([]model.ModuleRelation, 0, len(paths))
	for _, path := range paths {
		out = append(out, model.ModuleRelation{
			Module:        path,
			Relationships: byModule[path],
		})
	}
	return out
}

func emptyModuleAnalysis(path string) model.ModuleAnalysis {
	return model.ModuleAnalysis{
		Path:                 path,
		InternalDependencies: []model.Relationship{},
		ExternalDependencies: []model.ModuleRelation{},
		ExternalDependents:   []model.ModuleRelation{},
	}
}
