package history

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingFile(t *testing.T) {
	h, err := New(afero.NewMemMapFs(), "/home/u/.myshell_history", 10)
	require.NoError(t, err)
	assert.Empty(t, h.GetAll())
}

func TestAddPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	h, err := New(fs, "hist", 10)
	require.NoError(t, err)

	require.NoError(t, h.Add("sleep 100 &"))
	require.NoError(t, h.Add("jobs"))

	contents, err := afero.ReadFile(fs, "hist")
	require.NoError(t, err)
	assert.Equal(t, "sleep 100 &\njobs\n", string(contents))

	reloaded, err := New(fs, "hist", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep 100 &", "jobs"}, reloaded.GetAll())
}

func TestMaxItems(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "hist", []byte("a\nb\nc\n"), 0600))

	h, err := New(fs, "hist", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, h.GetAll())

	require.NoError(t, h.Add("d"))
	assert.Equal(t, []string{"c", "d"}, h.GetAll())
}

func TestGetAllCopies(t *testing.T) {
	h, err := New(afero.NewMemMapFs(), "hist", 0)
	require.NoError(t, err)
	require.NoError(t, h.Add("pwd"))

	items := h.GetAll()
	items[0] = "changed"
	assert.Equal(t, []string{"pwd"}, h.GetAll())
}
