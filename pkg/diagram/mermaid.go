package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eitatech/gatomia-analyzer/pkg/analysis"
)

// ModuleOverview renders a mermaid flowchart of all modules with one arrow
// per cross-module dependency pair. It consumes only the analyzer's query
// surface; no analytical logic lives here.
func ModuleOverview(a *analysis.Analyzer) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	paths := make([]string, 0, len(a.TreeIndex().Modules))
	for path := range a.TreeIndex().Modules {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	ids := makeIDs(paths)
	for _, path := range paths {
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", ids[path], escapeLabel(path))
	}

	seen := make(map[string]bool)
	for _, path := range paths {
		ma := a.AnalyzeModule(path)
		for _, group := range ma.ExternalDependencies {
			if group.Module == "" {
				continue // unassigned components have no module box
			}
			key := path + " --> " + group.Module
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&b, "    %s --> %s\n", ids[path], ids[group.Module])
		}
	}

	return b.String()
}

// ModuleDetail renders a mermaid flowchart of one module's components and
// the edges among them, with cross-module targets shown as external boxes.
func ModuleDetail(a *analysis.Analyzer, path string) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	m, ok := a.Module(path)
	if !ok {
		return b.String()
	}

	fmt.Fprintf(&b, "    subgraph %s[\"%s\"]\n", sanitizeID(path), escapeLabel(path))
	names := make(map[string]string, len(m.Components))
	for _, id := range m.Components {
		if c, exists := a.Component(id); exists {
			names[id] = c.Name
		} else {
			names[id] = id
		}
		fmt.Fprintf(&b, "        %s[\"%s\"]\n", sanitizeID(id), escapeLabel(names[id]))
	}
	b.WriteString("    end\n")

	ma := a.AnalyzeModule(path)
	for _, rel := range ma.InternalDependencies {
		fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(rel.From), sanitizeID(rel.To))
	}

	externals := make(map[string]bool)
	for _, group := range ma.ExternalDependencies {
		for _, rel := range group.Relationships {
			if !externals[rel.To] {
				externals[rel.To] = true
				fmt.Fprintf(&b, "    %s([\"%s\"])\n", sanitizeID(rel.To), escapeLabel(externalLabel(a, rel.To)))
			}
			fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(rel.From), sanitizeID(rel.To))
		}
	}

	return b.String()
}

func externalLabel(a *analysis.Analyzer, id string) string {
	c, ok := a.Component(id)
	if !ok {
		return id
	}
	if c.Module != "" {
		return c.Module + ": " + c.Name
	}
	return c.Name
}

// makeIDs assigns stable mermaid node ids to the given names.
func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		id := sanitizeID(name)
		for used[id] {
			id += "_"
		}
		used[id] = true
		ids[name] = id
	}
	return ids
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return strings.ReplaceAll(s, "\n", " ")
}
