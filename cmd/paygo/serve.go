package main

import (
	"os"

	"github.com/rgehrsitz/paygo/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = listenAddr()
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		return api.NewServer(table, newTaxCalculator(table), logger).ListenAndServe(addr)
	},
}

func listenAddr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: :$PORT or :8080)")
}
