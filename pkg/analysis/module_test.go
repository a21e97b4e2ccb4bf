package analysis

import (
	"testing"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

func TestAnalyzeModulePerfectCohesion(t *testing.T) {
	tree := model.ModuleTree{
		"core": {Components: []string{"core.A", "core.B"}},
	}
	graph := model.DependencyGraph{
		"core.A": {DependsOn: []string{"core.B"}},
		"core.B": {DependsOn: []string{"core.A"}},
	}

	a := New(tree, graph)
	result := a.AnalyzeModule("core")

	if result.Error != "" {
		t.Fatalf("Unexpected error: %s", result.Error)
	}
	if result.Complexity.InternalEdgeCount != 2 {
		t.Errorf("InternalEdgeCount = %d, want 2", result.Complexity.InternalEdgeCount)
	}
	if result.Complexity.ExternalEdgeCount != 0 {
		t.Errorf("ExternalEdgeCount = %d, want 0", result.Complexity.ExternalEdgeCount)
	}
	if result.Complexity.CohesionScore != 1.0 {
		t.Errorf("CohesionScore = %f, want 1.0", result.Complexity.CohesionScore)
	}
}

func TestAnalyzeModuleZeroEdges(t *testing.T) {
	tree := model.ModuleTree{
		"isolated": {Components: []string{"iso.A"}},
	}
	graph := model.DependencyGraph{
		"iso.A": {},
	}

	a := New(tree, graph)
	result := a.AnalyzeModule("isolated")

	if result.Complexity.CohesionScore != 0.0 {
		t.Errorf("Zero-edge module should score 0.0, got %f", result.Complexity.CohesionScore)
	}
	if result.Complexity.ComponentCount != 1 {
		t.Errorf("ComponentCount = %d, want 1", result.Complexity.ComponentCount)
	}
}

func TestAnalyzeModuleExternalGrouping(t *testing.T) {
	tree := model.ModuleTree{
		"a": {
			Components: []string{"a.X"},
			Children: map[string]model.ModuleNode{
				"a/b": {Components: []string{"a.b.Y", "a.b.Z"}},
			},
		},
	}
	graph := model.DependencyGraph{
		"a.X":   {DependsOn: []string{"a.b.Y", "a.b.Z"}},
		"a.b.Y": {},
		"a.b.Z": {},
	}

	a := New(tree, graph)
	result := a.AnalyzeModule("a")

	if len(result.ExternalDependencies) != 1 {
		t.Fatalf("Expected one dependency module group, got %d", len(result.ExternalDependencies))
	}
	group := result.ExternalDependencies[0]
	if group.Module != "a/b" {
		t.Errorf("Group module = %q, want a/b", group.Module)
	}
	if len(group.Relationships) != 2 {
		t.Errorf("Expected 2 relationships in group, got %d", len(group.Relationships))
	}

	// The same edges show up as dependents on the child's side.
	child := a.AnalyzeModule("a/b")
	if len(child.ExternalDependents) != 1 || child.ExternalDependents[0].Module != "a" {
		t.Fatalf("Child should see dependents from a, got %v", child.ExternalDependents)
	}
	if child.Complexity.ExternalEdgeCount != 2 {
		t.Errorf("Child ExternalEdgeCount = %d, want 2", child.Complexity.ExternalEdgeCount)
	}
}

func TestAnalyzeModuleNotFound(t *testing.T) {
	a := New(model.ModuleTree{}, model.DependencyGraph{})

	result := a.AnalyzeModule("missing")
	if result.Error == "" {
		t.Fatal("Expected error for unknown module")
	}
	if result.Path != "missing" {
		t.Errorf("Result should echo the queried path, got %q", result.Path)
	}
}

func TestCohesionBounds(t *testing.T) {
	tests := []struct {
		internal, external int
		want               float64
	}{
		{0, 0, 0.0},
		{4, 0, 1.0},
		{0, 4, 0.0},
		{1, 3, 0.25},
	}
	for _, tt := range tests {
		got := cohesion(tt.internal, tt.external)
		if got != tt.want {
			t.Errorf("cohesion(%d, %d) = %f, want %f", tt.internal, tt.external, got, tt.want)
		}
		if got < 0.0 || got > 1.0 {
			t.Errorf("cohesion(%d, %d) = %f out of [0,1]", tt.internal, tt.external, got)
		}
	}
}

func TestAnalyzeModuleInternalNotDoubleCounted(t *testing.T) {
	tree := model.ModuleTree{
		"m": {Components: []string{"m.A", "m.B"}},
	}
	graph := model.DependencyGraph{
		"m.A": {DependsOn: []string{"m.B"}},
		"m.B": {},
	}

	a := New(tree, graph)
	result := a.AnalyzeModule("m")

	// One directed edge, counted once even though both endpoints are members.
	if result.Complexity.InternalEdgeCount != 1 {
		t.Errorf("InternalEdgeCount = %d, want 1", result.Complexity.InternalEdgeCount)
	}
	if result.Complexity.CohesionScore != 1.0 {
		t.Errorf("CohesionScore = %f, want 1.0", result.Complexity.CohesionScore)
	}
}
