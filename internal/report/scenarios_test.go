package report

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioNames(t *testing.T) {
	names := ScenarioNames()

	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "Atriumflutter")
	assert.Contains(t, names, "Chronisch hartfalen HFrEF")
}

func TestScenarioByName(t *testing.T) {
	s, ok := ScenarioByName("Atriumflutter")
	require.True(t, ok)
	assert.Equal(t, "Atriumflutter", s.Name)
	assert.NotEmpty(t, s.Description)
	require.NotEmpty(t, s.Plan)

	_, ok = ScenarioByName("bestaat niet")
	assert.False(t, ok)
}

func TestScenariosComplete(t *testing.T) {
	for _, name := range ScenarioNames() {
		s, ok := ScenarioByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, s.Name)
		assert.NotEmpty(t, s.Plan, name)
	}
}
