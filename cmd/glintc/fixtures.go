package main

import (
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/glintlang/glintc"
)

// resolveFixtures expands any glob-bearing argument (e.g.
// "testdata/**/*.json") via doublestar and passes literal paths
// through unchanged, so `glintc analyze` can be pointed at a whole
// fixture tree in one invocation.
func resolveFixtures(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// loadFixture reads and parses one JSON AST fixture file.
func loadFixture(path string) (*glintc.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFixture(data)
}
