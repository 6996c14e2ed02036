// Command glintc drives the semantic analyzer over pre-built AST
// fixtures (JSON): source-text lexing/parsing is out of scope for the
// core (spec §1), so this driver's only input format is the fixture
// tree a real front end would have produced.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	historyDSN string
	envFile    string
	debugDB    bool
)

func main() {
	root := &cobra.Command{
		Use:   "glintc",
		Short: "Semantic analyzer and generic-instantiation engine driver",
		Long: "glintc runs the declaration, statement, expression, and generic-\n" +
			"instantiation analysis passes over JSON AST fixtures and reports\n" +
			"diagnostics, symbol tables, or instantiation-cache statistics.",
	}
	root.PersistentFlags().StringVar(&historyDSN, "history", "", "SQLite DSN to append a run record to (optional)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "explicit .env path to load config overrides from")
	root.PersistentFlags().BoolVar(&debugDB, "debug-db", false, "log history-store SQL statements")

	root.AddCommand(newAnalyzeCmd(), newSymbolsCmd(), newGenericsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
