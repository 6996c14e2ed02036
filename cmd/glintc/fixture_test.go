package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintlang/glintc"
)

func TestParseFixtureBasic(t *testing.T) {
	node, err := loadFixture("testdata/basic.json")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, glintc.KindProgram, node.Kind)

	a := glintc.NewAnalyzer(glintc.NewAnalyzerConfig())
	ok := a.Analyze(node)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())
}

func TestParseFixtureImmutableAssignment(t *testing.T) {
	node, err := loadFixture("testdata/immutable_violation.json")
	require.NoError(t, err)

	a := glintc.NewAnalyzer(glintc.NewAnalyzerConfig())
	a.Analyze(node)

	require.True(t, a.Diagnostics.HasErrors())
	found := false
	for _, d := range a.Diagnostics.Items() {
		if d.Kind == glintc.ImmutableModification {
			found = true
		}
	}
	assert.True(t, found, "expected an immutable-modification diagnostic")
}

func TestParseFixtureUnknownKind(t *testing.T) {
	_, err := parseFixture([]byte(`{"kind": "NotARealNodeKind"}`))
	assert.Error(t, err)
}

func TestResolveFixturesGlob(t *testing.T) {
	matches, err := resolveFixtures([]string{"testdata/*.json"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(matches), 2)
}

func TestResolveFixturesLiteral(t *testing.T) {
	matches, err := resolveFixtures([]string{"testdata/basic.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/basic.json"}, matches)
}
