package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/octet-labs/mkexample/internal/config"
	"github.com/octet-labs/mkexample/internal/registry"
	"github.com/spf13/viper"
)

// execute runs the root command with fresh flag and config state and
// returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile, rootDir, verbose, logFormat = "", "", false, ""
	updateFlag, cleanFlag = false, false
	listJSON, versionShort, versionJSON = false, false, false
	cfg, logger = nil, nil
	viper.Reset()
	config.SetFile("")
	t.Cleanup(func() {
		viper.Reset()
		config.SetFile("")
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newExamplesRoot lays out a prototype on disk and returns the examples
// root and a config path inside the same temp dir.
func newExamplesRoot(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "src", "examples")
	writeFile(t, filepath.Join(root, "example_prototype", "prototype.vcxproj"), "<ProjectName>prototype</ProjectName>\n")
	writeFile(t, filepath.Join(root, "example_prototype", "main.cpp"), "#include \"prototype.h\"\n")
	writeFile(t, filepath.Join(root, "example_prototype", "prototype.h"), "class prototype {};\n")
	return root, filepath.Join(dir, ".mkexample.yaml")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestRootCreatesEachName(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	out, _, err := execute(t, "--config", cfgPath, "--root", root, "invaders", "example_pong")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, p := range []string{
		"example_invaders/invaders.vcxproj",
		"example_invaders/main.cpp",
		"example_pong/pong.h",
	} {
		if !fileExists(filepath.Join(root, p)) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if fileExists(filepath.Join(root, "example_example_pong")) {
		t.Error("prefixed name must not be prefixed twice")
	}
	if !strings.Contains(out, "Created example_invaders/ (3 created, 0 kept)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRootWithoutArgsPrintsUsage(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	out, _, err := execute(t, "--config", cfgPath, "--root", root)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("expected usage, got:\n%s", out)
	}
	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("no project should be created, found %d entries", len(entries))
	}
}

func TestRootUnknownFlag(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	_, _, err := execute(t, "--config", cfgPath, "--root", root, "--bogus", "foo")
	if err == nil || !strings.Contains(err.Error(), "unrecognised option") {
		t.Fatalf("expected unrecognised option error, got %v", err)
	}
	if fileExists(filepath.Join(root, "example_foo")) {
		t.Error("nothing may be processed after a flag error")
	}
}

func TestRootUpdateWinsOverClean(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)
	if _, _, err := execute(t, "--config", cfgPath, "--root", root, "foo"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "example_foo", "foo.h")); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "--config", cfgPath, "--root", root, "--clean", "--update", "ignored"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !fileExists(filepath.Join(root, "example_foo", "foo.h")) {
		t.Error("update should have restored foo.h")
	}
	if !fileExists(filepath.Join(root, "example_foo", "foo.vcxproj")) {
		t.Error("clean must not run when update is given")
	}
	if fileExists(filepath.Join(root, "example_ignored")) {
		t.Error("positional names are ignored with --update")
	}
}

func TestRootClean(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)
	if _, _, err := execute(t, "--config", cfgPath, "--root", root, "foo"); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfgPath, "--root", root, "--clean")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if fileExists(filepath.Join(root, "example_foo", "foo.vcxproj")) {
		t.Error("foo.vcxproj should be removed")
	}
	if !fileExists(filepath.Join(root, "example_foo", "main.cpp")) {
		t.Error("main.cpp must stay")
	}
	if !fileExists(filepath.Join(root, "example_prototype", "prototype.vcxproj")) {
		t.Error("prototype must never be cleaned")
	}
	if !strings.Contains(out, "Cleaned example_foo/ (1 removed)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRootInvalidName(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	_, _, err := execute(t, "--config", cfgPath, "--root", root, "my_prototype")
	if !errors.Is(err, registry.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestRootMissingExamplesRoot(t *testing.T) {
	_, cfgPath := newExamplesRoot(t)

	_, _, err := execute(t, "--config", cfgPath, "--root", filepath.Join(t.TempDir(), "nope"), "foo")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRequiredVersion(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)
	writeFile(t, cfgPath, "required_version: \">= 2.0.0\"\n")

	saved := buildVersion
	buildVersion = "1.4.0"
	t.Cleanup(func() { buildVersion = saved })

	_, _, err := execute(t, "--config", cfgPath, "--root", root, "foo")
	if !errors.Is(err, config.ErrVersionConstraint) {
		t.Fatalf("expected ErrVersionConstraint, got %v", err)
	}
	if fileExists(filepath.Join(root, "example_foo")) {
		t.Error("nothing may be created when the version check fails")
	}
}

func TestConfigFileSettingsApply(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)
	writeFile(t, cfgPath, "examples_root: "+root+"\nprefix: demo_\n")

	if _, _, err := execute(t, "--config", cfgPath, "create", "foo"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !fileExists(filepath.Join(root, "demo_foo", "foo.vcxproj")) {
		t.Error("expected demo_foo/foo.vcxproj")
	}
}

func TestVerboseLogsFileDecisions(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	_, stderr, err := execute(t, "--config", cfgPath, "--root", root, "-v", "--log-format", "json", "foo")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stderr, `"msg":"created"`) || !strings.Contains(stderr, `"path":"example_foo/main.cpp"`) {
		t.Errorf("expected debug logs, got:\n%s", stderr)
	}
}

func TestRootCompletionIsAProjectName(t *testing.T) {
	root, cfgPath := newExamplesRoot(t)

	if _, _, err := execute(t, "--config", cfgPath, "--root", root, "completion"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !fileExists(filepath.Join(root, "example_completion", "completion.vcxproj")) {
		t.Error("expected example_completion to be created")
	}
}

func TestRootFlagHelpNamesEnvVar(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("root")
	if f == nil {
		t.Fatal("--root flag not registered")
	}
	if !strings.Contains(f.Usage, "MKEXAMPLE_EXAMPLES_ROOT") {
		t.Errorf("--root usage = %q", f.Usage)
	}
}
