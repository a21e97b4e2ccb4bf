package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// LoadModuleTree reads and decodes the nested module tree document.
// A missing file or malformed JSON is a fatal load error.
func LoadModuleTree(path string) (model.ModuleTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module tree %s: %w", path, err)
	}

	var tree model.ModuleTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing module tree %s: %w", path, err)
	}

	return tree, nil
}

// LoadDependencyGraph reads and decodes the flat dependency graph document.
func LoadDependencyGraph(path string) (model.DependencyGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dependency graph %s: %w", path, err)
	}

	var graph model.DependencyGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("parsing dependency graph %s: %w", path, err)
	}

	return graph, nil
}

// Load reads both input artifacts. Either failure aborts the whole load;
// per-item oddities inside the documents are tolerated downstream.
func Load(treePath, graphPath string) (model.ModuleTree, model.DependencyGraph, error) {
	tree, err := LoadModuleTree(treePath)
	if err != nil {
		return nil, nil, err
	}

	graph, err := LoadDependencyGraph(graphPath)
	if err != nil {
		return nil, nil, err
	}

	return tree, graph, nil
}
