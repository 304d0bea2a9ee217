package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/config"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/tui"
)

func main() {
	rulesFile := flag.String("rules", "", "Path to a rules file overlaid on the built-in data")
	inputFile := flag.String("input", "", "YAML, JSON or TOML file that pre-fills the form")
	flag.Parse()

	parser := config.NewInputParser()
	rules, err := parser.LoadRules(*rulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defaults := numeric.Fields{}
	if *inputFile != "" {
		if defaults, err = parser.LoadFields(*inputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(calculation.NewEngineWithRules(rules), defaults),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
