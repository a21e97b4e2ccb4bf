package analysis

import (
	"fmt"
	"sort"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
	"github.com/eitatech/gatomia-analyzer/pkg/purpose"
)

// mostDependedUponLimit caps the repository summary's ranking list.
const mostDependedUponLimit = 10

// Report assembles the per-module record documentation generation consumes:
// module metadata, the module-level analysis, and purpose plus relationship
// summaries for every owned component.
func (a *Analyzer) Report(path string) model.AnalysisReport {
	m, ok := a.treeIndex.Modules[path]
	if !ok {
		return model.AnalysisReport{
			Path:       path,
			Error:      fmt.Sprintf("module not found: %s", path),
			Components: []model.ComponentSummary{},
		}
	}

	report := model.AnalysisReport{
		Path:       path,
		Level:      m.Level,
		Parent:     m.Parent,
		IsLeaf:     m.IsLeaf,
		Analysis:   a.AnalyzeModule(path),
		Components: make([]model.ComponentSummary, 0, len(m.Components)),
	}

	for _, id := range m.Components {
		c, exists := a.components[id]
		if !exists {
			continue
		}
		report.Components = append(report.Components, model.ComponentSummary{
			ID:       id,
			Name:     c.Name,
			Type:     c.ComponentType,
			Purpose:  purpose.Infer(c),
			Analysis: a.AnalyzeComponent(id),
		})
	}

	return report
}

// Summary computes the whole-repository overview.
func (a *Analyzer) Summary() model.RepositorySummary {
	summary := model.RepositorySummary{
		ModuleCount:      len(a.treeIndex.Modules),
		ComponentCount:   len(a.components),
		LeafModuleCount:  len(a.treeIndex.LeafModules),
		RootModules:      a.treeIndex.RootModules,
		ModulesByLevel:   make(map[int][]string),
		MostDependedUpon: []model.RankedComponent{},
	}

	for path, m := range a.treeIndex.Modules {
		summary.ModulesByLevel[m.Level] = append(summary.ModulesByLevel[m.Level], path)
	}
	for level := range summary.ModulesByLevel {
		sort.Strings(summary.ModulesByLevel[level])
	}

	var cohesionSum float64
	for path := range a.treeIndex.Modules {
		cohesionSum += a.AnalyzeModule(path).Complexity.CohesionScore
	}
	if summary.ModuleCount > 0 {
		summary.AverageCohesion = cohesionSum / float64(summary.ModuleCount)
	}

	for _, id := range sortedComponentIDs(a.components) {
		c := a.components[id]
		if !c.HasModule() {
			summary.UnassignedCount++
		}
		summary.TotalEdgeCount += c.DependencyCount
		for _, target := range c.DependsOn {
			if _, exists := a.components[target]; !exists {
				summary.DanglingEdgeCount++
			}
		}
		if c.DependentCount > 0 {
			summary.MostDependedUpon = append(summary.MostDependedUpon, model.RankedComponent{
				ID:             id,
				Name:           c.Name,
				DependentCount: c.DependentCount,
			})
		}
	}

	// Highest fan-in first; ties stay in id order from the sorted walk.
	sort.SliceStable(summary.MostDependedUpon, func(i, j int) bool {
		return summary.MostDependedUpon[i].DependentCount > summary.MostDependedUpon[j].DependentCount
	})
	if len(summary.MostDependedUpon) > mostDependedUponLimit {
		summary.MostDependedUpon = summary.MostDependedUpon[:mostDependedUponLimit]
	}

	return summary
}

func sortedComponentIDs(components map[string]*model.ComponentRecord) []string {
	ids := make([]string, 0, len(components))
	for id := range components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
