//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/octet-labs/mkexample/internal/branding"
	"github.com/octet-labs/mkexample/internal/config"
	"github.com/spf13/viper"
)

// testEnv holds paths to an isolated octet checkout.
type testEnv struct {
	RepoDir    string // working copy root
	Root       string // src/examples
	ConfigFile string // .mkexample.yaml in RepoDir (not created)
}

// setupTestEnv creates a sandboxed checkout and points the config package at
// it through the environment, the way a user running from the repo root would.
// Global config state is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := t.TempDir()
	env := &testEnv{
		RepoDir:    repo,
		Root:       filepath.Join(repo, "src", "examples"),
		ConfigFile: filepath.Join(repo, ".mkexample.yaml"),
	}
	if err := os.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("creating examples root: %v", err)
	}

	viper.Reset()
	config.SetFile(env.ConfigFile)
	t.Setenv(branding.EnvVar(config.KeyExamplesRoot), env.Root)
	t.Cleanup(func() {
		config.SetFile("")
		viper.Reset()
	})

	return env
}

// setupPrototype writes an example_prototype tree shaped like octet's.
func setupPrototype(t *testing.T, root string) string {
	t.Helper()

	dir := filepath.Join(root, "example_prototype")

	writeFile(t, filepath.Join(dir, "prototype.vcxproj"), `<?xml version="1.0" encoding="utf-8"?>
<Project DefaultTargets="Build" ToolsVersion="12.0">
  <PropertyGroup Label="Globals">
    <ProjectGuid>{A1B2C3D4-0000-0000-0000-000000000000}</ProjectGuid>
    <RootNamespace>prototype</RootNamespace>
  </PropertyGroup>
  <ItemGroup>
    <ClCompile Include="main.cpp" />
    <ClInclude Include="prototype.h" />
  </ItemGroup>
</Project>
`)
	writeFile(t, filepath.Join(dir, "prototype.vcxproj.filters"), "<Filter Include=\"prototype\" />\n")
	writeFile(t, filepath.Join(dir, "main.cpp"), `#include "../../octet.h"
#include "prototype.h"

int main(int argc, char **argv) {
  octet::app::init_all(argc, argv);
  octet::app_utils::prototype_app *app = new octet::prototype_app(argc, argv);
  app->init();
  octet::app::run_all_apps();
}
`)
	writeFile(t, filepath.Join(dir, "prototype.h"), `namespace octet {
  class prototype_app : public octet::app {
  public:
    prototype_app(int argc, char **argv) : app(argc, argv) {}
  };
}
`)
	writeFile(t, filepath.Join(dir, "prototype.xcodeproj", "project.pbxproj"), "/* prototype */ {}\n")
	writeFile(t, filepath.Join(dir, "assets", "prototype_icon.png"), "\x89PNG\r\n\x1a\nprototype")

	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
