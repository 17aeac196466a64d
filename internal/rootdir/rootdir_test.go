package rootdir

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeadingNumber(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"00007_project", 7},
		{"00042_myproject", 42},
		{"0_x", 0},
		{"123_", 123},
		{"99999_a_b_c", 99999},
		{"100000_big", 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLeadingNumber(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseLeadingNumber_Invalid(t *testing.T) {
	for _, name := range []string{
		"project",
		"00007",
		"_project",
		"abc_project",
		"-1_project",
		"+5_project",
		"1e3_project",
		"99999999999999999999_overflow",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLeadingNumber(name)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, name, pe.Name)
		})
	}
}

func TestResolve_Existing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "00012_client")
	require.NoError(t, os.Mkdir(dir, 0o755))

	root, err := Resolve(dir)
	require.NoError(t, err)
	require.False(t, root.Created)
	require.Equal(t, "00012_client", root.Name)
	require.Equal(t, int64(12), root.Initial)
	require.True(t, filepath.IsAbs(root.Path))
}

func TestResolve_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "00003_new")

	root, err := Resolve(dir)
	require.NoError(t, err)
	require.True(t, root.Created)
	require.Equal(t, int64(3), root.Initial)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestResolve_RelativePath(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "5_rel"), 0o755))
	t.Chdir(base)

	root, err := Resolve("5_rel")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(base, "5_rel"))
	require.NoError(t, err)
	require.Equal(t, want, root.Path)
	require.Equal(t, int64(5), root.Initial)
}

func TestResolve_FollowsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	target := filepath.Join(base, "00009_real")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(target, link))

	root, err := Resolve(link)
	require.NoError(t, err)
	require.Equal(t, "00009_real", root.Name)
	require.Equal(t, int64(9), root.Initial)
}

func TestResolve_UnparseableName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := Resolve(dir)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestResolve_FileIsPathError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "1_file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := Resolve(file)
	var pe *PathError
	require.ErrorAs(t, err, &pe)
}

func TestBaseName_Root(t *testing.T) {
	_, err := BaseName(string(filepath.Separator))
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	require.True(t, errors.Is(err, ErrNoName))
}
