package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// ComponentNode represents a component in the dependency graph view.
type ComponentNode struct {
	ID     string // component id
	Name   string
	Type   string
	Module string // owning module path, empty when unassigned
}

// ComponentGraph wraps a gonum directed graph with string component ids.
type ComponentGraph struct {
	graph  *simple.DirectedGraph
	nodes  map[string]*ComponentNode
	ids    map[string]int64
	byID   map[int64]string
	nextID int64
}

// NewComponentGraph creates an empty component graph.
func NewComponentGraph() *ComponentGraph {
	return &ComponentGraph{
		graph: simple.NewDirectedGraph(),
		nodes: make(map[string]*ComponentNode),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
	}
}

// AddComponent adds a node for the component if it is not present yet.
func (cg *ComponentGraph) AddComponent(node ComponentNode) {
	if _, exists := cg.nodes[node.ID]; exists {
		return
	}

	cg.nodes[node.ID] = &node
	cg.ids[node.ID] = cg.nextID
	cg.byID[cg.nextID] = node.ID
	cg.graph.AddNode(simple.Node(cg.nextID))
	cg.nextID++
}

// AddDependency adds a directed edge between two existing components.
// Unknown endpoints and self-loops are ignored; gonum's simple graph cannot
// represent either, and both already carry no information for the view.
func (cg *ComponentGraph) AddDependency(source, target string) {
	sourceID, sourceOK := cg.ids[source]
	targetID, targetOK := cg.ids[target]
	if !sourceOK || !targetOK || sourceID == targetID {
		return
	}

	if !cg.graph.HasEdgeFromTo(sourceID, targetID) {
		cg.graph.SetEdge(cg.graph.NewEdge(cg.graph.Node(sourceID), cg.graph.Node(targetID)))
	}
}

// GetNode returns a component node by id.
func (cg *ComponentGraph) GetNode(id string) (*ComponentNode, bool) {
	node, exists := cg.nodes[id]
	return node, exists
}

// Nodes returns all component nodes sorted by id.
func (cg *ComponentGraph) Nodes() []*ComponentNode {
	ids := make([]string, 0, len(cg.nodes))
	for id := range cg.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]*ComponentNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, cg.nodes[id])
	}
	return nodes
}

// Edges returns all dependency edges as [source, target] id pairs.
func (cg *ComponentGraph) Edges() [][2]string {
	var edges [][2]string

	iter := cg.graph.Edges()
	for iter.Next() {
		edge := iter.Edge()
		edges = append(edges, [2]string{
			cg.byID[edge.From().ID()],
			cg.byID[edge.To().ID()],
		})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// Dependencies returns the ids of components the given component depends on.
func (cg *ComponentGraph) Dependencies(id string) []string {
	nodeID, exists := cg.ids[id]
	if !exists {
		return nil
	}

	var deps []string
	iter := cg.graph.From(nodeID)
	for iter.Next() {
		deps = append(deps, cg.byID[iter.Node().ID()])
	}
	sort.Strings(deps)
	return deps
}

// Dependents returns the ids of components depending on the given component.
func (cg *ComponentGraph) Dependents(id string) []string {
	nodeID, exists := cg.ids[id]
	if !exists {
		return nil
	}

	var sources []string
	iter := cg.graph.To(nodeID)
	for iter.Next() {
		sources = append(sources, cg.byID[iter.Node().ID()])
	}
	sort.Strings(sources)
	return sources
}

// BuildComponentGraph builds the graph view from a merged component map.
// Dangling depends_on targets are skipped.
func BuildComponentGraph(components map[string]*model.ComponentRecord) *ComponentGraph {
	cg := NewComponentGraph()

	for id, c := range components {
		cg.AddComponent(ComponentNode{
			ID:     id,
			Name:   c.Name,
			Type:   c.ComponentType,
			Module: c.Module,
		})
	}

	for id, c := range components {
		for _, target := range c.DependsOn {
			cg.AddDependency(id, target)
		}
	}

	return cg
}
