package index

import (
	"sort"
	"strings"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// BuildComponents converts the flat dependency graph input into per-component
// records with defaults applied and module ownership attached. The result is
// phase 1 of the two-phase build: DependedBy stays empty here and is filled
// from the reverse overlay when the analyzer assembles its view.
//
// No inter-component validation happens: dangling depends_on ids stay in the
// record verbatim.
func BuildComponents(graph model.DependencyGraph, componentToModule map[string]string) map[string]*model.ComponentRecord {
	components := make(map[string]*model.ComponentRecord, len(graph))

	for key, info := range graph {
		id := info.ID
		if id == "" {
			id = key
		}

		name := info.Name
		if name == "" {
			name = lastSegment(key)
		}

		componentType := info.ComponentType
		if componentType == "" {
			componentType = "unknown"
		}

		dependsOn := info.DependsOn
		if dependsOn == nil {
			dependsOn = []string{}
		}

		components[key] = &model.ComponentRecord{
			ID:              id,
			Name:            name,
			ComponentType:   componentType,
			FilePath:        info.FilePath,
			RelativePath:    info.RelativePath,
			DependsOn:       dependsOn,
			DependedBy:      []string{},
			Module:          componentToModule[key],
			DependencyCount: len(dependsOn),
			DependentCount:  0,
		}
	}

	return components
}

// BuildReverseIndex inverts the forward depends_on edges: for every edge
// (a depends_on b) where b exists in the component map, a is appended to
// b's source list. The component map itself is not touched; the overlay is
// a separate structure keyed by dependency target. Duplicate edges produce
// duplicate entries, matching the forward side.
func BuildReverseIndex(components map[string]*model.ComponentRecord) map[string][]string {
	reverse := make(map[string][]string)

	for _, id := range sortedIDs(components) {
		for _, target := range components[id].DependsOn {
			if _, exists := components[target]; !exists {
				continue
			}
			reverse[target] = append(reverse[target], id)
		}
	}

	return reverse
}

// Merge produces the final read-only component map: phase 1 records with the
// reverse overlay folded into DependedBy and DependentCount. The phase 1 map
// is left untouched.
func Merge(components map[string]*model.ComponentRecord, reverse map[string][]string) map[string]*model.ComponentRecord {
	merged := make(map[string]*model.ComponentRecord, len(components))

	for id, rec := range components {
		dependedBy := reverse[id]
		if dependedBy == nil {
			dependedBy = []string{}
		}

		clone := *rec
		clone.DependedBy = dependedBy
		clone.DependentCount = len(dependedBy)
		merged[id] = &clone
	}

	return merged
}

func lastSegment(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[idx+1:]
	}
	return id
}

func sortedIDs(components map[string]*model.ComponentRecord) []string {
	ids := make([]string, 0, len(components))
	for id := range components {
		ids = append(ids, id)
	}
	// Keep overlay lists deterministic across runs.
	sort.Strings(ids)
	return ids
}
