package diagram

import (
	"strings"
	"testing"

	"github.com/eitatech/gatomia-analyzer/pkg/analysis"
	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

func diagramFixture() *analysis.Analyzer {
	tree := model.ModuleTree{
		"a": {
			Components: []string{"a.X"},
			Children: map[string]model.ModuleNode{
				"a/b": {Components: []string{"a.b.Y"}},
			},
		},
	}
	graph := model.DependencyGraph{
		"a.X":   {Name: "X", DependsOn: []string{"a.b.Y"}},
		"a.b.Y": {Name: "Y"},
	}
	return analysis.New(tree, graph)
}

func TestModuleOverview(t *testing.T) {
	out := ModuleOverview(diagramFixture())

	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Errorf("Missing flowchart header:\n%s", out)
	}
	if !strings.Contains(out, `a["a"]`) {
		t.Errorf("Missing node for module a:\n%s", out)
	}
	if !strings.Contains(out, `a_b["a/b"]`) {
		t.Errorf("Missing node for module a/b:\n%s", out)
	}
	if !strings.Contains(out, "a --> a_b") {
		t.Errorf("Missing cross-module arrow:\n%s", out)
	}
}

func TestModuleOverviewDeduplicatesArrows(t *testing.T) {
	tree := model.ModuleTree{
		"a": {
			Components: []string{"a.X", "a.W"},
			Children: map[string]model.ModuleNode{
				"a/b": {Components: []string{"a.b.Y"}},
			},
		},
	}
	graph := model.DependencyGraph{
		"a.X":   {DependsOn: []string{"a.b.Y"}},
		"a.W":   {DependsOn: []string{"a.b.Y"}},
		"a.b.Y": {},
	}

	out := ModuleOverview(analysis.New(tree, graph))
	if n := strings.Count(out, "a --> a_b"); n != 1 {
		t.Errorf("Expected one arrow between a and a/b, got %d:\n%s", n, out)
	}
}

func TestModuleDetail(t *testing.T) {
	out := ModuleDetail(diagramFixture(), "a")

	if !strings.HasPrefix(out, "flowchart LR\n") {
		t.Errorf("Missing flowchart header:\n%s", out)
	}
	if !strings.Contains(out, `subgraph a["a"]`) {
		t.Errorf("Missing module subgraph:\n%s", out)
	}
	if !strings.Contains(out, `a_X["X"]`) {
		t.Errorf("Missing component node:\n%s", out)
	}
	if !strings.Contains(out, `a_b_Y(["a/b: Y"])`) {
		t.Errorf("Missing external target node:\n%s", out)
	}
	if !strings.Contains(out, "a_X --> a_b_Y") {
		t.Errorf("Missing external edge:\n%s", out)
	}
}

func TestModuleDetailUnknownModule(t *testing.T) {
	out := ModuleDetail(diagramFixture(), "missing")
	if out != "flowchart LR\n" {
		t.Errorf("Unknown module should render an empty chart, got:\n%s", out)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a/b", "a_b"},
		{"src.util.Strings", "src_util_Strings"},
		{"plain", "plain"},
		{"", "_"},
	}
	for _, tt := range tests {
		if got := sanitizeID(tt.in); got != tt.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeLabel(t *testing.T) {
	if got := escapeLabel("with \"quotes\"\nand newline"); got != "with &quot;quotes&quot; and newline" {
		t.Errorf("escapeLabel = %q", got)
	}
}
