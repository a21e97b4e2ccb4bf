package tree

import (
	"sort"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// Index is the flattened form of a module tree: every module keyed by path
// plus the classification lists and the component ownership map.
type Index struct {
	Modules           map[string]*model.ParsedModule
	LeafModules       []string
	ParentModules     []string
	RootModules       []string
	ComponentToModule map[string]string
}

// workItem carries level and parent explicitly so arbitrarily deep trees
// never grow the call stack.
type workItem struct {
	path   string
	node   model.ModuleNode
	parent string
	level  int
}

// Parse flattens the nested module tree into an Index using an explicit
// worklist. Visit order is pre-order with siblings sorted by path, which
// makes the last-write-wins ownership rule for duplicated component ids
// reproducible. Missing components/children fields default to empty.
func Parse(t model.ModuleTree) *Index {
	idx := &Index{
		Modules:           make(map[string]*model.ParsedModule),
		LeafModules:       make([]string, 0),
		ParentModules:     make([]string, 0),
		RootModules:       make([]string, 0),
		ComponentToModule: make(map[string]string),
	}

	stack := make([]workItem, 0, len(t))
	for _, path := range sortedKeysDesc(t) {
		stack = append(stack, workItem{path: path, node: t[path], level: 0})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		components := item.node.Components
		if components == nil {
			components = []string{}
		}
		children := item.node.Children
		if children == nil {
			children = map[string]model.ModuleNode{}
		}

		parsed := &model.ParsedModule{
			Path:       item.path,
			Components: components,
			Children:   children,
			Parent:     item.parent,
			IsLeaf:     len(children) == 0,
			Level:      item.level,
		}
		idx.Modules[item.path] = parsed

		if parsed.IsLeaf {
			idx.LeafModules = append(idx.LeafModules, item.path)
		} else {
			idx.ParentModules = append(idx.ParentModules, item.path)
		}
		if item.parent == "" {
			idx.RootModules = append(idx.RootModules, item.path)
		}

		// Last occurrence wins when a component id is listed under more
		// than one module.
		for _, id := range components {
			idx.ComponentToModule[id] = item.path
		}

		// Push children reversed so they pop in sorted order.
		childPaths := sortedKeysDesc(children)
		for _, childPath := range childPaths {
			stack = append(stack, workItem{
				path:   childPath,
				node:   children[childPath],
				parent: item.path,
				level:  item.level + 1,
			})
		}
	}

	sort.Strings(idx.LeafModules)
	sort.Strings(idx.ParentModules)
	sort.Strings(idx.RootModules)

	return idx
}

// MaxLevel returns the deepest level present in the index, or -1 when the
// tree is empty.
func (idx *Index) MaxLevel() int {
	max := -1
	for _, m := range idx.Modules {
		if m.Level > max {
			max = m.Level
		}
	}
	return max
}

// ModulesAtLevel returns the sorted paths of all modules at the given level.
func (idx *Index) ModulesAtLevel(level int) []string {
	var paths []string
	for path, m := range idx.Modules {
		if m.Level == level {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func sortedKeysDesc(m map[string]model.ModuleNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
