package cmd

import (
	"fmt"
	"strings"

	"github.com/adaptivemath/mathgen/internal/generators"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List question types and their operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := generators.NewRegistry()

		fmt.Printf("%-22s  %s\n", "Type", "Operations")
		fmt.Println(strings.Repeat("─", 90))

		for _, t := range registry.Types() {
			g, ok := registry.Get(t)
			if !ok {
				continue
			}
			ops := make([]string, 0, len(g.SupportedOperations()))
			for _, op := range g.SupportedOperations() {
				ops = append(ops, string(op))
			}
			fmt.Printf("%-22s  %s\n", t, strings.Join(ops, ", "))
		}

		fmt.Printf("\n%d types\n", len(registry.Types()))
		return nil
	},
}
