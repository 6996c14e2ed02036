package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/glintlang/glintc"
	"github.com/glintlang/glintc/cmd/glintc/history"
)

func newAnalyzeCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "analyze <fixture.json|glob>...",
		Short: "Run the full analysis pipeline over one or more AST fixtures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := resolveFixtures(args)
			if err != nil {
				return err
			}
			if len(fixtures) == 0 {
				return fmt.Errorf("no fixtures matched %v", args)
			}

			var store *gorm.DB
			if historyDSN != "" {
				db, err := history.Connect(historyDSN, debugDB)
				if err != nil {
					return err
				}
				store = db
			}

			exitCode := 0
			for _, f := range fixtures {
				if err := analyzeOne(f, quiet, store); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", f, err)
					exitCode = 1
					continue
				}
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-diagnostic output; print only the summary line")
	return cmd
}

func analyzeOne(path string, quiet bool, store *gorm.DB) error {
	node, err := loadFixture(path)
	if err != nil {
		return err
	}
	started := time.Now()
	cfg := loadConfig(envFile)
	a := glintc.NewAnalyzer(cfg)
	if ok := a.Analyze(node); !ok {
		return fmt.Errorf("internal analysis failure")
	}
	elapsed := time.Since(started)

	if !quiet {
		for _, d := range a.Diagnostics.Items() {
			fmt.Println(d.String())
		}
	}

	errs, warns := a.Diagnostics.ErrorCount(), a.Diagnostics.WarningCount()
	stats := a.Generics.Stats()
	fmt.Printf("%s: %d error(s), %d warning(s), %d generic instantiation(s)\n", path, errs, warns, stats.TotalInstantiations)

	if store != nil {
		_ = history.Record(store, &history.Run{
			Fixture:          path,
			StartedAt:        started,
			DurationMillis:   elapsed.Milliseconds(),
			ErrorCount:       errs,
			WarningCount:     warns,
			GenericInstances: int(stats.TotalInstantiations),
			OK:               errs == 0,
		})
	}

	if a.Diagnostics.HasErrors() {
		return fmt.Errorf("%d error(s)", errs)
	}
	return nil
}
