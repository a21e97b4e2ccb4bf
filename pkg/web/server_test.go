package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eitatech/gatomia-analyzer/pkg/analysis"
	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

func serverFixture() *Server {
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

	s := NewServer()
	s.SetAnalyzer(analysis.New(tree, graph))
	return s
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestSummaryEndpoint(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var summary model.RepositorySummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.ModuleCount != 2 || summary.ComponentCount != 2 {
		t.Errorf("Unexpected summary counts: %+v", summary)
	}
}

func TestSummaryUnavailableBeforeAnalysis(t *testing.T) {
	s := NewServer()

	rec := doGet(t, s, "/api/summary")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", rec.Code)
	}
}

func TestModuleReportEndpoint(t *testing.T) {
	s := serverFixture()

	// Module paths contain slashes; the route must swallow them.
	rec := doGet(t, s, "/api/module/a/b")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var report model.AnalysisReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if report.Path != "a/b" || report.Level != 1 {
		t.Errorf("Unexpected report: path=%q level=%d", report.Path, report.Level)
	}
}

func TestModuleReportNotFound(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/module/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", rec.Code)
	}

	var report model.AnalysisReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("404 body should still be JSON: %v", err)
	}
	if report.Error == "" {
		t.Error("Expected error field in 404 body")
	}
}

func TestComponentEndpoint(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/component/a.X")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var body struct {
		Component model.ComponentRecord   `json:"component"`
		Analysis  model.ComponentAnalysis `json:"analysis"`
		Purpose   model.ComponentPurpose  `json:"purpose"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Component.Module != "a" {
		t.Errorf("Component module = %q, want a", body.Component.Module)
	}
	if len(body.Analysis.ExternalDependencies) != 1 {
		t.Errorf("Expected one external dependency, got %v", body.Analysis.ExternalDependencies)
	}
	if body.Purpose.Role == "" {
		t.Error("Purpose should be populated")
	}
}

func TestComponentNotFound(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/component/ghost")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestOrderEndpoint(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/order")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var order []model.ProcessingLevel
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(order) != 2 || order[0].Level != 1 {
		t.Errorf("Unexpected order: %+v", order)
	}
}

func TestGraphEndpoint(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var data GraphData
	if err := json.NewDecoder(rec.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(data.Nodes) != 2 || len(data.Edges) != 1 {
		t.Errorf("Graph data nodes=%d edges=%d, want 2 and 1", len(data.Nodes), len(data.Edges))
	}

	// Empty graph rather than 503 so the UI can subscribe before first run.
	empty := NewServer()
	rec = doGet(t, empty, "/api/graph")
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200 before analysis", rec.Code)
	}
}

func TestDiagramEndpoint(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/diagram")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "flowchart TD") {
		t.Errorf("Expected overview flowchart, got:\n%s", rec.Body.String())
	}

	rec = doGet(t, s, "/api/diagram?module=a")
	if !strings.HasPrefix(rec.Body.String(), "flowchart LR") {
		t.Errorf("Expected detail flowchart, got:\n%s", rec.Body.String())
	}

	rec = doGet(t, s, "/api/diagram?module=missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := serverFixture()

	rec := doGet(t, s, "/api/summary")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on API responses")
	}
}
