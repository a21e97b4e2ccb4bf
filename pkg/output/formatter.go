package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/eitatech/gatomia-analyzer/pkg/model"
)

// PrintAnalysisReport prints a formatted repository analysis to the console.
// Cohesion coloring: green >= 0.8, yellow >= 0.5, red below.
func PrintAnalysisReport(summary model.RepositorySummary, order []model.ProcessingLevel, analyses map[string]model.ModuleAnalysis) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("Gatomia Analyzer - Repository Report")
	bold.Println("====================================")
	fmt.Printf("Modules: %d (%d leaf)\n", summary.ModuleCount, summary.LeafModuleCount)
	fmt.Printf("Components: %d", summary.ComponentCount)
	if summary.UnassignedCount > 0 {
		yellow.Printf(" (%d without a module)", summary.UnassignedCount)
	}
	fmt.Println()
	fmt.Printf("Dependency edges: %d", summary.TotalEdgeCount)
	if summary.DanglingEdgeCount > 0 {
		yellow.Printf(" (%d dangling)", summary.DanglingEdgeCount)
	}
	fmt.Println()
	fmt.Println()

	if len(order) > 0 {
		bold.Println("PROCESSING ORDER (leaves first):")
		for _, level := range order {
			cyan.Printf("  level %d: ", level.Level)
			fmt.Println(strings.Join(level.Modules, ", "))
		}
		fmt.Println()
	}

	if len(analyses) > 0 {
		bold.Println("MODULE COHESION:")
		for _, level := range order {
			for _, path := range level.Modules {
				ma, ok := analyses[path]
				if !ok {
					continue
				}
				score := ma.Complexity.CohesionScore
				c := green
				if score < 0.8 {
					c = yellow
				}
				if score < 0.5 {
					c = red
				}
				fmt.Printf("  %-40s ", path)
				c.Printf("%.2f", score)
				fmt.Printf("  (%d internal, %d external)\n",
					ma.Complexity.InternalEdgeCount, ma.Complexity.ExternalEdgeCount)
			}
		}
		fmt.Println()
	}

	if len(summary.MostDependedUpon) > 0 {
		bold.Println("MOST DEPENDED UPON:")
		for _, rc := range summary.MostDependedUpon {
			fmt.Printf("  %-50s %d dependents\n", rc.ID, rc.DependentCount)
		}
		fmt.Println()
	}

	avgColor := green
	if summary.AverageCohesion < 0.8 {
		avgColor = yellow
	}
	if summary.AverageCohesion < 0.5 {
		avgColor = red
	}
	avgColor.Printf("Average cohesion: %.2f\n", summary.AverageCohesion)
}
