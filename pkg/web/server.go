package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/eitatech/gatomia-analyzer/pkg/analysis"
	"github.com/eitatech/gatomia-analyzer/pkg/diagram"
	"github.com/eitatech/gatomia-analyzer/pkg/graph"
	"github.com/eitatech/gatomia-analyzer/pkg/logging"
	"github.com/eitatech/gatomia-analyzer/pkg/pubsub"
)

// GraphNode represents a node in the dependency graph view
type GraphNode struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	Module string `json:"module,omitempty"`
}

// GraphEdge represents an edge in the dependency graph view
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphData holds the dependency graph for visualization
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Server exposes the analyzer's query surface as a JSON API with SSE
// status updates. The analyzer instance is replaced wholesale after each
// re-analysis; individual responses always see one consistent instance.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu       sync.RWMutex
	analyzer *analysis.Analyzer
}

// NewServer creates a new web server.
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// Late subscribers only need the current state, not the history.
	ssePublisher.ConfigureTopic("analysis_status", pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// SetAnalyzer swaps in a freshly built analyzer.
func (s *Server) SetAnalyzer(a *analysis.Analyzer) {
	s.mu.Lock()
	s.analyzer = a
	s.mu.Unlock()
}

func (s *Server) getAnalyzer() *analysis.Analyzer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer
}

// PublishStatus publishes an analysis status event to SSE subscribers.
func (s *Server) PublishStatus(state, message string, step, total int) error {
	return s.publisher.Publish("analysis_status", state, pubsub.AnalysisStatus{
		State:   state,
		Message: message,
		Step:    step,
		Total:   total,
	})
}

// PublishStats publishes headline numbers after a completed run.
func (s *Server) PublishStats(moduleCount, componentCount int) error {
	return s.publisher.Publish("analysis_status", "stats", pubsub.AnalysisStats{
		ModuleCount:    moduleCount,
		ComponentCount: componentCount,
		Complete:       true,
	})
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(logging.RequestIDMiddleware)

	api.HandleFunc("/subscribe/analysis_status", s.handleSubscribeStatus).Methods("GET")

	api.HandleFunc("/summary", s.handleSummary).Methods("GET")
	api.HandleFunc("/modules", s.handleModules).Methods("GET")
	api.HandleFunc("/order", s.handleOrder).Methods("GET")
	api.HandleFunc("/graph", s.handleGraph).Methods("GET")
	api.HandleFunc("/diagram", s.handleDiagram).Methods("GET")
	api.HandleFunc("/component/{id}", s.handleComponent).Methods("GET")
	// Module paths contain slashes, so the path var must swallow them.
	api.HandleFunc("/module/{path:.*}", s.handleModuleReport).Methods("GET")
}

func (s *Server) handleSubscribeStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Initial comment establishes the stream (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), "analysis_status")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.ErrorContext(r.Context(), "error writing SSE event", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, a.Summary())
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, a.TreeIndex().Modules)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, a.ProcessingOrder())
}

func (s *Server) handleModuleReport(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}

	path := mux.Vars(r)["path"]
	report := a.Report(path)
	if report.Error != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(report)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	result := a.AnalyzeComponent(id)
	if result.Error != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(result)
		return
	}

	record, _ := a.Component(id)
	writeJSON(w, map[string]interface{}{
		"component": record,
		"analysis":  result,
		"purpose":   a.InferPurpose(id),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		writeJSON(w, &GraphData{Nodes: []GraphNode{}, Edges: []GraphEdge{}})
		return
	}
	writeJSON(w, buildGraphData(a))
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	a := s.getAnalyzer()
	if a == nil {
		http.Error(w, "analysis not available yet", http.StatusServiceUnavailable)
		return
	}

	var text string
	if modulePath := r.URL.Query().Get("module"); modulePath != "" {
		if _, ok := a.Module(modulePath); !ok {
			http.Error(w, fmt.Sprintf("module not found: %s", modulePath), http.StatusNotFound)
			return
		}
		text = diagram.ModuleDetail(a, modulePath)
	} else {
		text = diagram.ModuleOverview(a)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, text)
}

// buildGraphData converts the component graph into the visualization format.
func buildGraphData(a *analysis.Analyzer) *GraphData {
	cg := graph.BuildComponentGraph(a.Components())

	graphData := &GraphData{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
	}

	for _, node := range cg.Nodes() {
		graphData.Nodes = append(graphData.Nodes, GraphNode{
			ID:     node.ID,
			Label:  node.Name,
			Type:   node.Type,
			Module: node.Module,
		})
	}

	for _, edge := range cg.Edges() {
		graphData.Edges = append(graphData.Edges, GraphEdge{
			Source: edge[0],
			Target: edge[1],
		})
	}

	return graphData
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("error encoding response", "error", err)
	}
}

// Start starts the web server on the specified port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
