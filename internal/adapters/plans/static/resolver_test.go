package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()
	ctx := context.Background()

	for plan, want := range map[string]int{"Essencial": 1, "Plus": 4, "Elite": 15, "elite": 15} {
		got, err := r.PetLimit(ctx, plan)
		require.NoError(t, err)
		require.Equal(t, want, got, plan)
	}

	_, err := r.PetLimit(ctx, "Gold")
	require.ErrorIs(t, err, ErrUnknownPlan)
	require.Equal(t, DefaultPlan, r.PlanForProduct("whatever"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - name: Elite
    pet_limit: 20
    products: ["hm-999"]
  - name: Essencial
    pet_limit: 2
    products: ["kw-1", "hm-1"]
`), 0o600))

	r, err := LoadFile(path)
	require.NoError(t, err)

	n, err := r.PetLimit(context.Background(), "Elite")
	require.NoError(t, err)
	require.Equal(t, 20, n)
	require.Equal(t, "Essencial", r.PlanForProduct("hm-1"))
	require.Equal(t, "Elite", r.PlanForProduct("hm-999"))
	require.Equal(t, "Essencial", r.Plans()[0].Name)

	r, err = LoadFile("")
	require.NoError(t, err)
	require.Len(t, r.Plans(), 3)
}

func TestParse_Invalid(t *testing.T) {
	for _, doc := range []string{
		"plans: []",
		"plans:\n  - name: X\n    pet_limit: 0\n",
		"plans:\n  - name: X\n    pet_limit: 1\n  - name: X\n    pet_limit: 2\n",
		"plans: [",
	} {
		_, err := Parse([]byte(doc))
		require.Error(t, err, doc)
	}
}
