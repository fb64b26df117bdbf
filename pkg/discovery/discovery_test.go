package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
	"github.com/core-tools/hsu-svcctl/pkg/logging"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDiscoverResolvesSpecFiles(t *testing.T) {
	root := t.TempDir()
	writeSpecFile(t, root, "a.toml", "pkg_ident = \"pkg/a\"\n")
	writeSpecFile(t, root, "b.toml", "pkg_ident = \"pkg/b\"\nchannel = \"unstable\"\n")
	writeSpecFile(t, root, filepath.Join("nested", "c.toml"), "pkg_ident = \"pkg/c\"\n")
	writeSpecFile(t, root, "notes.txt", "not a spec\n")

	defaultFile := writeSpecFile(t, t.TempDir(), "svc.toml", "channel = \"beta\"\n")

	result, err := Discover(Options{Roots: []string{root}, DefaultFile: defaultFile}, logging.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Failures.HasErrors())

	require.Len(t, result.Specs, 3)
	assert.Equal(t, "pkg/a", result.Specs[0].Spec.Ident.String())
	assert.Equal(t, "pkg/b", result.Specs[1].Spec.Ident.String())
	assert.Equal(t, "pkg/c", result.Specs[2].Spec.Ident.String())

	// The default layer fills what a file leaves unset, and never
	// overrides what a file decided.
	assert.Equal(t, "beta", result.Specs[0].Spec.Channel)
	assert.Equal(t, "unstable", result.Specs[1].Spec.Channel)
	assert.Equal(t, "beta", result.Specs[2].Spec.Channel)
}

func TestDiscoverOrderIsRootOrderThenPathOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeSpecFile(t, first, "z.toml", "pkg_ident = \"pkg/z\"\n")
	writeSpecFile(t, second, "a.toml", "pkg_ident = \"pkg/a\"\n")
	writeSpecFile(t, second, "b.toml", "pkg_ident = \"pkg/b\"\n")

	result, err := Discover(Options{Roots: []string{first, second}}, logging.NewNopLogger())
	require.NoError(t, err)

	require.Len(t, result.Specs, 3)
	assert.Equal(t, "pkg/z", result.Specs[0].Spec.Ident.String())
	assert.Equal(t, "pkg/a", result.Specs[1].Spec.Ident.String())
	assert.Equal(t, "pkg/b", result.Specs[2].Spec.Ident.String())
}

func TestDiscoverMissingNonDefaultRootFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")

	result, err := Discover(Options{Roots: []string{missing}}, logging.NewNopLogger())
	assert.Nil(t, result)
	assert.True(t, errors.IsIOError(err))
}

func TestDiscoverMissingDefaultRootTolerated(t *testing.T) {
	if _, err := os.Stat(svcspec.DefaultSpecConfigDir()); err == nil {
		t.Skip("well-known spec directory exists on this machine")
	}

	result, err := Discover(Options{
		DefaultFile: filepath.Join(t.TempDir(), "absent.toml"),
	}, logging.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Specs)
	assert.False(t, result.Failures.HasErrors())
}

func TestDiscoverMissingDefaultRootUncleanPathTolerated(t *testing.T) {
	if _, err := os.Stat(svcspec.DefaultSpecConfigDir()); err == nil {
		t.Skip("well-known spec directory exists on this machine")
	}

	// A trailing separator must not defeat the tolerance for the missing
	// well-known directory.
	result, err := Discover(Options{
		Roots:       []string{svcspec.DefaultSpecConfigDir() + string(filepath.Separator)},
		DefaultFile: filepath.Join(t.TempDir(), "absent.toml"),
	}, logging.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Specs)
	assert.False(t, result.Failures.HasErrors())
}

func TestDiscoverCollectsPerFileFailures(t *testing.T) {
	root := t.TempDir()
	writeSpecFile(t, root, "good.toml", "pkg_ident = \"pkg/good\"\n")
	writeSpecFile(t, root, "malformed.toml", "pkg_ident = \n")
	writeSpecFile(t, root, "noident.toml", "channel = \"beta\"\n")
	writeSpecFile(t, root, "unknownkey.toml", "pkg_ident = \"pkg/x\"\nchanel = \"typo\"\n")

	result, err := Discover(Options{Roots: []string{root}}, logging.NewNopLogger())
	require.NoError(t, err)

	// One bad file never aborts the pass.
	require.Len(t, result.Specs, 1)
	assert.Equal(t, "pkg/good", result.Specs[0].Spec.Ident.String())
	require.True(t, result.Failures.HasErrors())
	assert.Len(t, result.Failures.Errors, 3)

	var decodeSeen, identSeen, unknownSeen bool
	for _, failure := range result.Failures.Errors {
		switch {
		case errors.IsDecodeError(failure):
			decodeSeen = true
		case errors.IsMissingIdentityError(failure):
			identSeen = true
		case errors.IsUnknownFieldError(failure):
			unknownSeen = true
		}
	}
	assert.True(t, decodeSeen)
	assert.True(t, identSeen)
	assert.True(t, unknownSeen)
}

func TestDiscoverMissingDefaultFileIsIgnored(t *testing.T) {
	root := t.TempDir()
	writeSpecFile(t, root, "a.toml", "pkg_ident = \"pkg/a\"\n")

	result, err := Discover(Options{
		Roots:       []string{root},
		DefaultFile: filepath.Join(t.TempDir(), "absent.toml"),
	}, logging.NewNopLogger())
	require.NoError(t, err)

	require.Len(t, result.Specs, 1)
	assert.Equal(t, svcspec.DefaultChannel, result.Specs[0].Spec.Channel)
}
