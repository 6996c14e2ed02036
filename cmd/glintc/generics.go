package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glintlang/glintc"
)

func newGenericsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generics <fixture.json>",
		Short: "Analyze a fixture and report generic-instantiation cache statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			a := glintc.NewAnalyzer(loadConfig(envFile))
			a.Analyze(node)

			stats := a.Generics.Stats()
			fmt.Printf("generic declarations registered: %d\n", stats.GenericCount)
			fmt.Printf("total instantiations performed:  %d\n", stats.TotalInstantiations)
			fmt.Printf("live cached instantiations:       %d\n", stats.LiveInstantiations)
			return nil
		},
	}
}
