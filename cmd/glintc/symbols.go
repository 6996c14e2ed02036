package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glintlang/glintc"
)

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <fixture.json>",
		Short: "Analyze a fixture and dump its top-level symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			a := glintc.NewAnalyzer(loadConfig(envFile))
			a.Analyze(node)

			a.Global.IterateSorted(func(name string, e *glintc.SymbolEntry) bool {
				used := " "
				if e.Flags.Has(glintc.SymFlagUsed) {
					used = "*"
				}
				fmt.Printf("%s %-8s %-20s %s\n", used, e.Kind, name, e.Visibility)
				return true
			})
			for _, d := range a.Diagnostics.Items() {
				fmt.Println(d.String())
			}
			return nil
		},
	}
}
