package purpose

import (
	"fmt"
	"strings"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// Role is the inferred architectural role of a component.
type Role string

const (
	RoleManager       Role = "manager"
	RoleService       Role = "service"
	RoleGenerator     Role = "generator"
	RoleAnalyzer      Role = "analyzer"
	RoleProcessor     Role = "processor"
	RoleAdapter       Role = "adapter"
	RoleModel         Role = "model"
	RoleUtility       Role = "utility"
	RoleConfiguration Role = "configuration"
	RoleController    Role = "controller"
	RoleUnknown       Role = "unknown"
)

// FragmentRule maps a name fragment to a role. Rules are checked in order
// and the first match wins, so the table order is part of the contract.
type FragmentRule struct {
	Fragment   string
	Role       Role
	Confidence float64
	Purpose    string
}

// FragmentTable is the ordered name-fragment dispatch table. Matching is
// case-insensitive substring containment.
var FragmentTable = []FragmentRule{
	{"manager", RoleManager, 0.8, "Manages and coordinates other components"},
	{"service", RoleService, 0.8, "Provides business logic services"},
	{"generator", RoleGenerator, 0.8, "Generates output artifacts"},
	{"builder", RoleGenerator, 0.8, "Generates output artifacts"},
	{"analyzer", RoleAnalyzer, 0.8, "Analyzes data or structures"},
	{"parser", RoleAnalyzer, 0.8, "Analyzes data or structures"},
	{"handler", RoleProcessor, 0.7, "Processes events or requests"},
	{"processor", RoleProcessor, 0.7, "Processes events or requests"},
	{"adapter", RoleAdapter, 0.8, "Adapts between interfaces"},
	{"wrapper", RoleAdapter, 0.8, "Adapts between interfaces"},
	{"model", RoleModel, 0.7, "Represents data structures"},
	{"entity", RoleModel, 0.7, "Represents data structures"},
	{"dto", RoleModel, 0.7, "Represents data structures"},
	{"util", RoleUtility, 0.7, "Provides utility functions"},
	{"helper", RoleUtility, 0.7, "Provides utility functions"},
	{"config", RoleConfiguration, 0.8, "Holds configuration"},
	{"settings", RoleConfiguration, 0.8, "Holds configuration"},
}

// controllerDependencyThreshold is the fan-out above which an unnamed role
// is assumed to coordinate many components.
const controllerDependencyThreshold = 10

// Infer classifies a component's likely role from its name and connectivity.
// The fragment table is consulted first; connectivity only decides the role
// when no fragment matches. Dependent-count observations are always appended
// to the reasoning but never change an already-matched role.
func Infer(c *model.ComponentRecord) model.ComponentPurpose {
	p := model.ComponentPurpose{
		ID:         c.ID,
		Role:       string(RoleUnknown),
		Confidence: 0.5,
		Reasoning:  []string{},
	}

	matched := false
	lowerName := strings.ToLower(c.Name)
	for _, rule := range FragmentTable {
		if strings.Contains(lowerName, rule.Fragment) {
			p.Role = string(rule.Role)
			p.Confidence = rule.Confidence
			p.PrimaryPurpose = rule.Purpose
			p.Reasoning = append(p.Reasoning,
				fmt.Sprintf("name contains %q suggesting %s role", rule.Fragment, rule.Role))
			matched = true
			break
		}
	}

	if !matched {
		switch {
		case c.DependencyCount == 0:
			p.Role = string(RoleModel)
			p.Confidence = 0.6
			p.PrimaryPurpose = "Represents data structures"
			p.Reasoning = append(p.Reasoning, "no dependencies suggests a passive data structure")
		case c.DependencyCount > controllerDependencyThreshold:
			p.Role = string(RoleController)
			p.Confidence = 0.6
			p.PrimaryPurpose = "Coordinates many components"
			p.Reasoning = append(p.Reasoning,
				fmt.Sprintf("%d dependencies suggests a coordinating role", c.DependencyCount))
		default:
			p.PrimaryPurpose = "Purpose unclear from name and connectivity"
			p.Reasoning = append(p.Reasoning, "no name pattern matched")
		}
	}

	// Connectivity notes: informational only, the role is already decided.
	if c.DependentCount == 0 {
		p.Reasoning = append(p.Reasoning, "nothing depends on this component")
	} else if c.DependentCount > controllerDependencyThreshold {
		p.Reasoning = append(p.Reasoning,
			fmt.Sprintf("%d dependents mark this as a widely used component", c.DependentCount))
	}

	return p
}
