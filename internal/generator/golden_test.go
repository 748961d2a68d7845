package generator

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/calumari/oocgen/internal/diag"
)

// TestGolden renders the input.c of every archive in testdata and compares
// the result with the out.h and out.ci files stored next to it.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)
			files := make(map[string][]byte, len(ar.Files))
			for _, f := range ar.Files {
				files[f.Name] = f.Data
			}
			src, ok := files["input.c"]
			require.True(t, ok, "archive has no input.c")

			bag := diag.NewBag(10)
			s := NewStore()
			ScanSource(s, "input.c", src, diag.BagReporter{Bag: bag})
			opts := DefaultOptions()
			opts.HeaderName = "out.h"
			art, err := Generate(s, opts, diag.BagReporter{Bag: bag})
			require.NoError(t, err)
			require.Zero(t, bag.Len(), "%v", bag.Items())

			require.Equal(t, string(files["out.h"]), string(art.Declarations))
			require.Equal(t, string(files["out.ci"]), string(art.Bodies))
		})
	}
}
