package scaffold

import (
	"os"
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/octet-labs/mkexample/internal/config"
	"github.com/stretchr/testify/require"
)

const vcxproj = `<?xml version="1.0" encoding="utf-8"?>
<Project DefaultTargets="Build">
  <PropertyGroup Label="Globals">
    <RootNamespace>prototype</RootNamespace>
    <ProjectName>prototype</ProjectName>
  </PropertyGroup>
  <ItemGroup>
    <ClCompile Include="main.cpp" />
    <ClInclude Include="prototype.h" />
  </ItemGroup>
</Project>
`

const mainCpp = `#include "../../octet.h"

int main(int argc, char **argv) {
  return octet::run(argc, argv);
}
`

// newPrototypeFS returns an in-memory examples root holding a small
// prototype tree modelled on the octet example layout.
func newPrototypeFS(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	writeFile(t, fs, "example_prototype/prototype.vcxproj", vcxproj)
	writeFile(t, fs, "example_prototype/main.cpp", mainCpp)
	writeFile(t, fs, "example_prototype/prototype.h", "class prototype_app : public octet::app {};\n")
	writeFile(t, fs, "example_prototype/shaders/prototype.vs", "// vertex shader for prototype\n")
	return fs
}

func newEngine(t *testing.T, fs billy.Filesystem) *Engine {
	t.Helper()
	return New(fs, config.Default(), nil)
}

func writeFile(t *testing.T, fs billy.Filesystem, name, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(path.Dir(name), 0755))
	require.NoError(t, util.WriteFile(fs, name, []byte(content), 0644))
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	require.NoError(t, err, "reading %s", name)
	return string(data)
}

func exists(fs billy.Filesystem, name string) bool {
	_, err := fs.Lstat(name)
	return err == nil
}

// snapshot maps every regular file below root to its content.
func snapshot(t *testing.T, fs billy.Filesystem, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	var visit func(dir string)
	visit = func(dir string) {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			p := path.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				visit(p)
			case entry.Mode().IsRegular():
				out[p] = readFile(t, fs, p)
			}
		}
	}
	visit(root)
	return out
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
