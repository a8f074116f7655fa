package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/tui"
)

func main() {
	offersPath := ""
	if len(os.Args) > 1 {
		offersPath = os.Args[1]
	} else {
		fmt.Println("Usage: paygo-tui <offers-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(offersPath); os.IsNotExist(err) {
		fmt.Printf("Error: Offers file not found: %s\n", offersPath)
		os.Exit(1)
	}

	file, err := config.LoadOffers(offersPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	table, err := config.DefaultCountryTable()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	engine := compare.NewEngine(calculation.NewTaxCalculator(table))

	model := tui.NewModel(engine, table.Codes(), file.Country, file.FilingStatus, file.Offers)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
