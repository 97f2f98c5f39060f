package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenPlans(t *testing.T) {
	for _, name := range []string{
		"code_cell_execution",
		"identical_trees",
	} {
		scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, scenario)
		})
	}
}
