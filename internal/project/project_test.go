package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/testutil"
	"github.com/vk/rpgbaker/internal/value"
)

func TestNew_SavesDefaults(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.BasePath)
	assert.True(t, IsProjectDir(dir))
	assert.False(t, IsProjectDir(t.TempDir()))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "New Project", loaded.Name)
	assert.Equal(t, "0.0.0", loaded.Version)
	assert.Equal(t, []string{"You"}, loaded.Authors)
	assert.Zero(t, loaded.StartupRoutine.Blocks.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := &Project{
		Name:            "Demo",
		Version:         "1.2.3-beta.1+build.7",
		Description:     "A test",
		Authors:         []string{"A", "B"},
		StoryDefinition: []byte(`{"base_type":"void"}`),
		StartupRoutine: descriptor.NewRecipe(
			testutil.LogBlock(testutil.Sub(testutil.AddBlock(
				testutil.Sub(testutil.IntBlock(1)),
				testutil.Sub(testutil.IntBlock(1)),
			))),
		),
	}
	require.NoError(t, p.SaveAs(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Version, loaded.Version)
	assert.JSONEq(t, string(p.StoryDefinition), string(loaded.StoryDefinition))
	if diff := cmp.Diff(p.StartupRoutine.Blocks.Snapshot(), loaded.StartupRoutine.Blocks.Snapshot()); diff != "" {
		t.Errorf("startup routine mismatch (-want +got):\n%s", diff)
	}

	loaded.StartupRoutine.Blocks.Push(testutil.LogBlock(testutil.Lit(value.Text("more"))))
	require.NoError(t, loaded.Save())
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, again.StartupRoutine.Blocks.Len())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err, "no project file")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"name":"x","version":"1.2"}`), 0o644))
	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "major, minor and patch")

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"name":"x","version":"1.0.0","startup_routine":{"blocks":[{"source":"nope"}]}}`), 0o644))
	_, err = Load(dir)
	assert.Error(t, err)
}

func TestValidateVersion(t *testing.T) {
	for _, v := range []string{"0.0.0", "1.2.3", "10.20.30-rc.1", "1.0.0+meta"} {
		assert.NoError(t, ValidateVersion(v), v)
	}
	for _, v := range []string{"", "1", "1.2", "v1.2.3", "1.2.3.4", "01.2.3", "x.y.z"} {
		assert.Error(t, ValidateVersion(v), v)
	}
}

func TestSave_RequiresValidProject(t *testing.T) {
	p := &Project{Name: "", Version: "1.0.0"}
	assert.Error(t, p.SaveAs(t.TempDir()))
	assert.Error(t, (&Project{Name: "x", Version: "1.0.0"}).Save(), "no base path")
}

func TestCompareVersion(t *testing.T) {
	p := &Project{Version: "1.2.0"}
	assert.Equal(t, 1, p.CompareVersion("1.1.9"))
	assert.Equal(t, 0, p.CompareVersion("v1.2.0"))
	assert.Equal(t, -1, p.CompareVersion("1.10.0"))
}
