package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	aferrors "github.com/matzehuels/anchorflow/pkg/errors"
	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/pipeline"
)

const testScene = `name = "row"

[container]
width = 600
height = 100

[[box]]
id = "icon"
width = 100
height = 50
anchors.left = { to = "parent.left", margin = 10 }
anchors.top = { to = "parent.top", margin = 10 }

[[box]]
id = "title"
height = 50
horizontal = { behavior = "match_constraint" }
anchors.left = { to = "icon.right", margin = 10 }
anchors.right = { to = "parent.right", margin = 10 }
anchors.top = { to = "icon.top" }
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "row.toml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "scenes/dialog.toml", "scenes/dialog"},
		{"", "dialog", "dialog"},
		{"out/dialog.svg", "dialog.toml", "out/dialog"},
		{"out/dialog.png", "dialog.toml", "out/dialog"},
		{"out/dialog.dot", "dialog.toml", "out/dialog"},
		{"out/dialog", "dialog.toml", "out/dialog"},
		{"out/dialog.v2", "dialog.toml", "out/dialog.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"json, svg,png", []string{"json", "svg", "png"}},
		{"json,,", []string{"json"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"solve", "graph", "explore", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command missing %q (have %v)", want, names)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"json": []byte("{}"), "svg": []byte("<svg/>")}

	t.Run("base path", func(t *testing.T) {
		paths, err := writeArtifacts(artifacts, []string{"json", "svg"}, filepath.Join(dir, "out", "scene"), "scene.toml")
		if err != nil {
			t.Fatalf("writeArtifacts: %v", err)
		}
		want := []string{filepath.Join(dir, "out", "scene.json"), filepath.Join(dir, "out", "scene.svg")}
		if !slices.Equal(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
		data, _ := os.ReadFile(want[1])
		if string(data) != "<svg/>" {
			t.Errorf("svg content = %q", data)
		}
	})

	t.Run("exact file", func(t *testing.T) {
		out := filepath.Join(dir, "exact.layout")
		paths, err := writeArtifacts(artifacts, []string{"json"}, out, "scene.toml")
		if err != nil {
			t.Fatalf("writeArtifacts: %v", err)
		}
		if len(paths) != 1 || paths[0] != out {
			t.Errorf("paths = %v, want [%s]", paths, out)
		}
	})
}

func TestRunSolve(t *testing.T) {
	input := writeScene(t)
	var logs bytes.Buffer
	ctx := log.WithContext(context.Background(), newLogger(&logs, log.InfoLevel))
	runner := pipeline.NewRunner(nil, nil, nil)

	err := runSolve(ctx, runner, input, []string{"json", "svg"}, solveOpts{labels: true, scale: 1}, false)
	if err != nil {
		t.Fatalf("runSolve: %v", err)
	}

	l, err := layout.ReadLayoutFile(strings.TrimSuffix(input, ".toml") + ".json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if !l.Resolved {
		t.Error("layout should be resolved")
	}
	title, ok := l.Lookup("title")
	if !ok {
		t.Fatal("title missing from layout")
	}
	if title.X != 120 || title.Width != 470 {
		t.Errorf("title = x %d width %d, want x 120 width 470", title.X, title.Width)
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".toml") + ".svg"); err != nil {
		t.Errorf("svg not written: %v", err)
	}
	if !strings.Contains(logs.String(), "Solved row") {
		t.Errorf("progress not logged: %q", logs.String())
	}
}

func TestRunSolveMissingFile(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, nil)
	err := runSolve(context.Background(), runner, filepath.Join(t.TempDir(), "none.toml"), []string{"json"}, solveOpts{}, false)
	if err == nil {
		t.Fatal("expected error for missing scene")
	}
}

func TestWatchFile(t *testing.T) {
	path := writeScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, newLogger(&bytes.Buffer{}, log.InfoLevel), func() error {
			calls.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(testScene+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if calls.Load() == 0 {
		t.Error("fn was not called after the file changed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile() error: %v", err)
	}
}

func TestExploreModel(t *testing.T) {
	var sizes [][2]int
	solve := func(width, height int) (layout.Layout, error) {
		sizes = append(sizes, [2]int{width, height})
		return layout.Layout{
			Width: width, Height: height, Resolved: true,
			Boxes: []layout.Box{{ID: "a", Width: width / 2}, {ID: "b"}},
			Trace: []layout.Step{{Step: 1, Box: "a"}, {Step: 2, Box: "b"}},
		}, nil
	}

	m, err := NewExploreModel("row", 600, 100, solve)
	if err != nil {
		t.Fatalf("NewExploreModel: %v", err)
	}

	press := func(m ExploreModel, key string) ExploreModel {
		var msg tea.KeyMsg
		switch key {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, _ := m.Update(msg)
		return next.(ExploreModel)
	}

	m = press(m, "right")
	if m.Width != 610 || m.Layout.Width != 610 {
		t.Errorf("after right: width %d layout %d, want 610", m.Width, m.Layout.Width)
	}
	m = press(m, "]")
	if m.Height != 110 {
		t.Errorf("after ]: height %d, want 110", m.Height)
	}
	if len(sizes) != 3 {
		t.Errorf("solve called %d times, want 3", len(sizes))
	}

	m = press(m, "down")
	m = press(m, "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	m = press(m, "t")
	m = press(m, "n")
	if step, ok := m.currentStep(); !ok || step.Box != "b" {
		t.Errorf("current step = %+v, %v; want box b", step, ok)
	}
	if !strings.Contains(m.View(), "Step 2/2") {
		t.Error("view should show the trace step")
	}
	m = press(m, "t")
	if _, ok := m.currentStep(); ok {
		t.Error("trace should be hidden after toggling")
	}
}

func TestExploreModelIgnoresNonPositiveSize(t *testing.T) {
	calls := 0
	solve := func(width, height int) (layout.Layout, error) {
		calls++
		return layout.Layout{Width: width, Height: height}, nil
	}
	m, _ := NewExploreModel("tiny", 10, 10, solve)
	m = m.resize(0, 10)
	if m.Width != 10 || calls != 1 {
		t.Errorf("width = %d after %d solves, want 10 after 1", m.Width, calls)
	}
}

func TestCompleteScene(t *testing.T) {
	exts, dir := completeScene(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || !slices.Equal(exts, sceneExtensions) {
		t.Errorf("completeScene() = %v, %v", exts, dir)
	}
	if _, dir := completeScene(nil, []string{"a.toml"}, ""); dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", dir)
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), "anchorflow") {
		t.Error("bash completion should mention the program name")
	}
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"success":     {nil, ExitOK},
		"interrupted": {fmt.Errorf("solve: %w", context.Canceled), ExitInterrupted},
		"bad scene":   {aferrors.New(aferrors.ErrCodeInvalidScene, "duplicate id"), ExitInvalid},
		"missing":     {aferrors.New(aferrors.ErrCodeFileNotFound, "no such scene"), ExitInvalid},
		"internal":    {aferrors.New(aferrors.ErrCodeInternal, "render"), ExitFailure},
		"plain":       {stderrors.New("boom"), ExitFailure},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorLine(t *testing.T) {
	err := aferrors.New(aferrors.ErrCodeInvalidAnchor, "unknown target %q", "ghost").In("title")
	if got := ErrorLine(err); !strings.Contains(got, `title: unknown target "ghost"`) {
		t.Errorf("ErrorLine() = %q", got)
	}
	if got := ErrorLine(stderrors.New("boom")); !strings.HasSuffix(got, " boom") {
		t.Errorf("ErrorLine() = %q", got)
	}
}

func TestVerboseFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--verbose", "cache", "path"})
	root.SetOut(&bytes.Buffer{})
	captureStdout(t)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
