package model

// ModuleNode is one node of the nested module hierarchy as it appears in
// the module tree input document. Children are keyed by full module path
// (e.g., "core/analysis" under "core").
type ModuleNode struct {
	Components []string              `json:"components,omitempty"`
	Children   map[string]ModuleNode `json:"children,omitempty"`
}

// ModuleTree is the top-level module tree input, keyed by root module path.
type ModuleTree map[string]ModuleNode

// ComponentInfo is one entry of the flat dependency graph input.
// DependsOn may reference ids that are absent from the graph; such dangling
// edges are kept as-is and skipped during classification.
type ComponentInfo struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name,omitempty"`
	ComponentType string   `json:"component_type,omitempty"`
	FilePath      string   `json:"file_path,omitempty"`
	RelativePath  string   `json:"relative_path,omitempty"`
	DependsOn     []string `json:"depends_on,omitempty"`
}

// DependencyGraph is the flat dependency graph input, keyed by component id.
type DependencyGraph map[string]ComponentInfo

// ParsedModule is the flattened view of one module tree node.
// Level counts ancestors (roots are level 0), Parent is empty for roots,
// and IsLeaf holds exactly when the node has no children.
type ParsedModule struct {
	Path       string                `json:"path"`
	Components []string              `json:"components"`
	Children   map[string]ModuleNode `json:"children"`
	Parent     string                `json:"parent,omitempty"`
	IsLeaf     bool                  `json:"is_leaf"`
	Level      int                   `json:"level"`
}

// ComponentRecord is the derived per-component record: the input entry with
// defaults applied, plus module ownership and the reverse-index overlay.
// Module is empty when the component is listed under no module.
type ComponentRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ComponentType   string   `json:"component_type"`
	FilePath        string   `json:"file_path,omitempty"`
	RelativePath    string   `json:"relative_path,omitempty"`
	DependsOn       []string `json:"depends_on"`
	DependedBy      []string `json:"depended_by"`
	Module          string   `json:"module,omitempty"`
	DependencyCount int      `json:"dependency_count"`
	DependentCount  int      `json:"dependent_count"`
}

// HasModule reports whether the component is owned by any module.
func (c *ComponentRecord) HasModule() bool {
	return c.Module != ""
}

// Relationship is a single directed component-to-component edge.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ComponentAnalysis partitions one component's relationships into
// same-module and cross-module sets. Error is set (and all collections
// empty) when the queried id does not exist.
type ComponentAnalysis struct {
	ID                   string   `json:"id"`
	Error                string   `json:"error,omitempty"`
	InternalDependencies []string `json:"internal_dependencies"`
	ExternalDependencies []string `json:"external_dependencies"`
	InternalDependents   []string `json:"internal_dependents"`
	ExternalDependents   []string `json:"external_dependents"`
	DependencyModules    []string `json:"dependency_modules"`
	DependentModules     []string `json:"dependent_modules"`
}

// ModuleRelation groups the relationship edges between one module and a
// single peer module.
type ModuleRelation struct {
	Module        string         `json:"module"`
	Relationships []Relationship `json:"relationships"`
}

// ModuleComplexity summarizes a module's size and self-containment.
// CohesionScore is internal/(internal+external) edges, 0.0 when the module
// touches no edges at all.
type ModuleComplexity struct {
	ComponentCount    int     `json:"component_count"`
	InternalEdgeCount int     `json:"internal_edge_count"`
	ExternalEdgeCount int     `json:"external_edge_count"`
	CohesionScore     float64 `json:"cohesion_score"`
}

// ModuleAnalysis is the module-level dependency breakdown.
type ModuleAnalysis struct {
	Path                 string           `json:"path"`
	Error                string           `json:"error,omitempty"`
	InternalDependencies []Relationship   `json:"internal_dependencies"`
	ExternalDependencies []ModuleRelation `json:"external_dependencies"`
	ExternalDependents   []ModuleRelation `json:"external_dependents"`
	Complexity           ModuleComplexity `json:"complexity"`
}

// ProcessingLevel is one batch of the bottom-up processing order: all
// modules sharing a tree depth, deepest batches first.
type ProcessingLevel struct {
	Level   int      `json:"level"`
	Modules []string `json:"modules"`
}

// ComponentPurpose is the heuristic role classification of a component.
type ComponentPurpose struct {
	ID             string   `json:"id"`
	Error          string   `json:"error,omitempty"`
	PrimaryPurpose string   `json:"primary_purpose"`
	Role           string   `json:"role"`
	Confidence     float64  `json:"confidence"`
	Reasoning      []string `json:"reasoning"`
}

// ComponentSummary is the per-component slice of a module analysis report.
type ComponentSummary struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Purpose  ComponentPurpose  `json:"purpose"`
	Analysis ComponentAnalysis `json:"analysis"`
}

// AnalysisReport is the full per-module record consumed by documentation
// generation: module metadata, the module-level analysis, and a summary for
// every owned component.
type AnalysisReport struct {
	Path       string             `json:"path"`
	Error      string             `json:"error,omitempty"`
	Level      int                `json:"level"`
	Parent     string             `json:"parent,omitempty"`
	IsLeaf     bool               `json:"is_leaf"`
	Analysis   ModuleAnalysis     `json:"analysis"`
	Components []ComponentSummary `json:"components"`
}

// RankedComponent pairs a component id with its dependent count for the
// repository summary's most-depended-upon listing.
type RankedComponent struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DependentCount int    `json:"dependent_count"`
}

// RepositorySummary is the whole-repository overview.
type RepositorySummary struct {
	ModuleCount       int               `json:"module_count"`
	ComponentCount    int               `json:"component_count"`
	LeafModuleCount   int               `json:"leaf_module_count"`
	RootModules       []string          `json:"root_modules"`
	ModulesByLevel    map[int][]string  `json:"modules_by_level"`
	AverageCohesion   float64           `json:"average_cohesion"`
	MostDependedUpon  []RankedComponent `json:"most_depended_upon"`
	UnassignedCount   int               `json:"unassigned_count"`
	TotalEdgeCount    int               `json:"total_edge_count"`
	DanglingEdgeCount int               `json:"dangling_edge_count"`
}
