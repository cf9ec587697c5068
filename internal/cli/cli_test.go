package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dagcheck/pkg/dagcheck"
)

// isolate points config and cache lookups at temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("DAGCHECK_CACHE", "")
	t.Setenv("DAGCHECK_LOG_LEVEL", "")
	return filepath.Join(cacheHome, "dagcheck")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeGraph(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const (
	validGraph = `{"nodes":[{"id":"a"},{"id":"b"},{"id":"c"}],
		"edges":[{"id":"e1","source":"a","target":"b"},{"id":"e2","source":"b","target":"c"}]}`
	cyclicGraph = `{"nodes":[{"id":"a"},{"id":"b"}],
		"edges":[{"id":"e1","source":"a","target":"b"},{"id":"e2","source":"b","target":"a"}]}`
	danglingGraph = `{"nodes":[{"id":"a"},{"id":"b"}],
		"edges":[{"id":"e1","source":"a","target":"b"},{"id":"e2","source":"a","target":"ghost"}]}`
)

func TestValidateCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr error
	}{
		{name: "valid file", args: []string{"validate", writeGraph(t, validGraph)}, want: dagcheck.MsgValid},
		{name: "cycle from stdin", stdin: cyclicGraph, args: []string{"validate", "-"}, want: dagcheck.MsgCycle, wantErr: ErrInvalidGraph},
		{name: "implicit stdin", stdin: `{"nodes":[{"id":"a"}]}`, args: []string{"validate"}, want: dagcheck.MsgTooFewNodes, wantErr: ErrInvalidGraph},
		{name: "dangling edge lax", args: []string{"validate", "--no-cache", writeGraph(t, danglingGraph)}, want: dagcheck.MsgValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestValidateCommandErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		in   string
	}{
		{"missing file", []string{"validate", filepath.Join(t.TempDir(), "nope.json")}, ""},
		{"malformed json", []string{"validate"}, `{"nodes":`},
		{"strict dangling", []string{"validate", "--strict", writeGraph(t, danglingGraph)}, ""},
		{"missing config", []string{"validate", "-c", filepath.Join(t.TempDir(), "none.toml"), writeGraph(t, validGraph)}, ""},
		{"too many args", []string{"validate", "a.json", "b.json"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.in, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrInvalidGraph) {
				t.Errorf("err = %v, want an input error", err)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, cyclicGraph, "validate", "--json")
	if !errors.Is(err, ErrInvalidGraph) {
		t.Fatalf("err = %v, want ErrInvalidGraph", err)
	}
	var res dagcheck.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Valid || res.Reason != dagcheck.ReasonCycle || res.Message != dagcheck.MsgCycle {
		t.Errorf("result = %+v", res)
	}
}

func TestValidateUsesFileCache(t *testing.T) {
	isolate(t)
	path := writeGraph(t, validGraph)

	out, err := execute(t, "", "validate", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconFresh) {
		t.Errorf("first run output %q should report a fresh result", out)
	}

	out, err = execute(t, "", "validate", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second run output %q should report a cached result", out)
	}

	out, err = execute(t, "", "validate", "--no-cache", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconFresh) {
		t.Errorf("--no-cache output %q should report a fresh result", out)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on missing dir = %q", out)
	}

	if _, err := execute(t, "", "validate", writeGraph(t, validGraph)); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("clear output = %q", out)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	isolate(t)
	custom := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	body := "[cache]\ndir = \"" + filepath.ToSlash(custom) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != filepath.ToSlash(custom) {
		t.Errorf("cache path = %q, want %q", got, custom)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "", "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "dagcheck") {
				t.Errorf("%s completion does not mention dagcheck", shell)
			}
		})
	}

	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
