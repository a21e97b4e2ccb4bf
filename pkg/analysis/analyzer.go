package analysis

import (
	"fmt"
	"sort"

	"github.com/eitatech/gatomia-analyzer/pkg/index"
	"github.com/eitatech/gatomia-analyzer/pkg/model"
	"github.com/eitatech/gatomia-analyzer/pkg/purpose"
	"github.com/eitatech/gatomia-analyzer/pkg/tree"
)

// Analyzer holds the derived structures built once from the two input
// documents. All query methods are pure reads, so an Analyzer is safe for
// concurrent use after New returns.
type Analyzer struct {
	treeIndex  *tree.Index
	components map[string]*model.ComponentRecord
	reverse    map[string][]string
}

// New builds the analyzer's derived structures: flattened module index,
// component map, and reverse dependency overlay. Construction never fails;
// degenerate input (missing fields, dangling edges, duplicate ownership)
// is tolerated per the documented rules.
func New(t model.ModuleTree, g model.DependencyGraph) *Analyzer {
	treeIndex := tree.Parse(t)
	phase1 := index.BuildComponents(g, treeIndex.ComponentToModule)
	reverse := index.BuildReverseIndex(phase1)

	return &Analyzer{
		treeIndex:  treeIndex,
		components: index.Merge(phase1, reverse),
		reverse:    reverse,
	}
}

// TreeIndex exposes the flattened module index.
func (a *Analyzer) TreeIndex() *tree.Index {
	return a.treeIndex
}

// Components exposes the merged component map. Callers must treat it as
// read-only.
func (a *Analyzer) Components() map[string]*model.ComponentRecord {
	return a.components
}

// Component returns the merged record for one id.
func (a *Analyzer) Component(id string) (*model.ComponentRecord, bool) {
	rec, ok := a.components[id]
	return rec, ok
}

// Module returns the parsed module for one path.
func (a *Analyzer) Module(path string) (*model.ParsedModule, bool) {
	m, ok := a.treeIndex.Modules[path]
	return m, ok
}

// AnalyzeComponent partitions a component's relationships into internal
// (same module, with two unassigned components counting as the same module)
// and external sets. Unknown ids produce an error-flagged empty result
// rather than an error return, so callers can branch on the Error field.
func (a *Analyzer) AnalyzeComponent(id string) model.ComponentAnalysis {
	result := emptyComponentAnalysis(id)

	c, ok := a.components[id]
	if !ok {
		result.Error = fmt.Sprintf("component not found: %s", id)
		return result
	}

	depModules := make(map[string]bool)
	for _, targetID := range c.DependsOn {
		target, exists := a.components[targetID]
		if !exists {
			continue // dangling edge
		}
		if target.Module == c.Module {
			result.InternalDependencies = append(result.InternalDependencies, targetID)
		} else {
			result.ExternalDependencies = append(result.ExternalDependencies, targetID)
			depModules[target.Module] = true
		}
	}

	dependentModules := make(map[string]bool)
	for _, sourceID := range c.DependedBy {
		source, exists := a.components[sourceID]
		if !exists {
			continue
		}
		if source.Module == c.Module {
			result.InternalDependents = append(result.InternalDependents, sourceID)
		} else {
			result.ExternalDependents = append(result.ExternalDependents, sourceID)
			dependentModules[source.Module] = true
		}
	}

	result.DependencyModules = sortedSet(depModules)
	result.DependentModules = sortedSet(dependentModules)

	return result
}

// InferPurpose runs the role heuristic for one component, soft-failing on
// unknown ids like AnalyzeComponent does.
func (a *Analyzer) InferPurpose(id string) model.ComponentPurpose {
	c, ok := a.components[id]
	if !ok {
		return model.ComponentPurpose{
			ID:        id,
			Error:     fmt.Sprintf("component not found: %s", id),
			Role:      string(purpose.RoleUnknown),
			Reasoning: []string{},
		}
	}
	return purpose.Infer(c)
}

func emptyComponentAnalysis(id string) model.ComponentAnalysis {
	return model.ComponentAnalysis{
		ID:                   id,
		InternalDependencies: []string{},
		ExternalDependencies: []string{},
		InternalDependents:   []string{},
		ExternalDependents:   []string{},
		DependencyModules:    []string{},
		DependentModules:     []string{},
	}
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
