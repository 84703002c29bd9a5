package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/imsctx/internal/config"
	"github.com/raphi011/imsctx/internal/ims"
)

// testEnv is an isolated set of store files and a working directory.
type testEnv struct {
	ctx context.Context
	cfg *config.Config
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Store: config.StoreConfig{
			GlobalFile: filepath.Join(dir, "global", "store.toml"),
			LocalFile:  config.DefaultLocalFile,
		},
		Keys:        ims.DefaultKeyNames(),
		HistoryFile: filepath.Join(dir, "history.json"),
	}
	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithWorkDir(ctx, filepath.Join(dir, "work"))
	return &testEnv{ctx: ctx, cfg: cfg, dir: dir}
}

// run executes imsctx with args and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(e.ctx)
	return stdout.String(), stderr.String(), err
}

// mustRun is run that fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("imsctx %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout, stderr
}

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid JSON output %q: %v", s, err)
	}
	return v
}

func TestSetUseGet(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "prod", "client_id=abc", "token.value=t0k3n")

	if out, stderr := e.mustRun(t, "current"); out != "" || !strings.Contains(stderr, "No current context") {
		t.Errorf("current before use = %q / %q", out, stderr)
	}

	_, stderr := e.mustRun(t, "use", "prod")
	if !strings.Contains(stderr, `Switched to context "prod"`) {
		t.Errorf("use stderr = %q", stderr)
	}

	if out, _ := e.mustRun(t, "current"); out != "prod\n" {
		t.Errorf("current = %q, want prod", out)
	}

	out, _ := e.mustRun(t, "get")
	want := map[string]any{"client_id": "abc", "token": map[string]any{"value": "t0k3n"}}
	if got := decodeJSON(t, out); !reflect.DeepEqual(got, want) {
		t.Errorf("get = %v, want %v", got, want)
	}

	if out, _ := e.mustRun(t, "get", "prod", "--query", "token.value"); out != "t0k3n\n" {
		t.Errorf("get --query = %q, want t0k3n", out)
	}

	out, _ = e.mustRun(t, "get", "--json")
	got := decodeJSON(t, out).(map[string]any)
	if got["name"] != "prod" {
		t.Errorf("get --json name = %v, want prod", got["name"])
	}
}

func TestGet_Errors(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "prod", "a=x")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no current", []string{"get"}, "no current context"},
		{"unknown context", []string{"get", "nope"}, `context "nope" not found`},
		{"missing query", []string{"get", "prod", "--query", "b"}, `"b" not found`},
	}

	for _, tt := range tests {
		_, _, err := e.run(t, "", tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestSet_ReplacesData(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "dev", "a=x", "b=y")
	e.mustRun(t, "set", "dev", "c=z")

	out, _ := e.mustRun(t, "get", "dev")
	if got, want := decodeJSON(t, out), map[string]any{"c": "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("get = %v, want %v", got, want)
	}
}

func TestSet_CurrentContext(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, _, err := e.run(t, "", "set", "a=1")
	if !errors.Is(err, ims.ErrMissingContextLabel) {
		t.Fatalf("set without current: error = %v, want ErrMissingContextLabel", err)
	}
	if !strings.Contains(err.Error(), "imsctx use") {
		t.Errorf("set without current: error = %q, want a hint at 'imsctx use'", err)
	}

	e.mustRun(t, "use", "dev")
	e.mustRun(t, "set", "token=abc")

	if out, _ := e.mustRun(t, "get", "dev", "--query", "token"); out != "abc\n" {
		t.Errorf("token = %q, want abc", out)
	}
}

func TestSet_DataFromStdin(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, stderr, err := e.run(t, `{"client_id": "x", "scopes": ["a", "b"]}`, "set", "dev", "--data", "-"); err != nil {
		t.Fatalf("set --data - failed: %v\n%s", err, stderr)
	}

	out, _ := e.mustRun(t, "get", "dev", "--query", "scopes.1")
	if out != "b\n" {
		t.Errorf("scopes.1 = %q, want b", out)
	}
}

func TestSet_Local(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "dev", "a=global")
	e.mustRun(t, "set", "dev", "a=local", "--local")

	if out, _ := e.mustRun(t, "get", "dev", "--query", "a"); out != "local\n" {
		t.Errorf("merged a = %q, want local", out)
	}

	localFile := filepath.Join(e.dir, "work", config.DefaultLocalFile)
	data, err := os.ReadFile(localFile)
	if err != nil {
		t.Fatalf("local store not written: %v", err)
	}
	if !strings.Contains(string(data), "local") {
		t.Errorf("local store = %s", data)
	}

	e.mustRun(t, "delete", "dev", "--local")
	if out, _ := e.mustRun(t, "get", "dev", "--query", "a"); out != "global\n" {
		t.Errorf("a after local delete = %q, want global", out)
	}
}

func TestUse_Previous(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, _, err := e.run(t, "", "use", "-"); err == nil {
		t.Error("use - without history should fail")
	}

	e.mustRun(t, "set", "dev", "a=1")
	e.mustRun(t, "set", "prod", "a=2")
	e.mustRun(t, "use", "dev")
	e.mustRun(t, "use", "prod")
	e.mustRun(t, "use", "-")

	if out, _ := e.mustRun(t, "current"); out != "dev\n" {
		t.Errorf("current after use - = %q, want dev", out)
	}

	e.mustRun(t, "use", "-")
	if out, _ := e.mustRun(t, "current"); out != "prod\n" {
		t.Errorf("current after second use - = %q, want prod", out)
	}
}

func TestUse_UnknownContextWarns(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "production", "a=1")

	_, stderr := e.mustRun(t, "use", "prodction")
	stderr = ansi.Strip(stderr)
	if !strings.Contains(stderr, "does not exist") {
		t.Errorf("expected warning, got %q", stderr)
	}
	if !strings.Contains(stderr, "Did you mean: production?") {
		t.Errorf("expected suggestion, got %q", stderr)
	}

	// The switch still happens
	if out, _ := e.mustRun(t, "current"); out != "prodction\n" {
		t.Errorf("current = %q, want prodction", out)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, stderr := e.mustRun(t, "list"); !strings.Contains(stderr, "No contexts stored") {
		t.Errorf("empty list stderr = %q", stderr)
	}

	e.mustRun(t, "set", "prod", "a=1")
	e.mustRun(t, "set", "dev", "a=1", "--local")
	e.mustRun(t, "use", "prod")

	if out, _ := e.mustRun(t, "ls"); out != "  dev\n* prod\n" {
		t.Errorf("list = %q", out)
	}

	out, _ := e.mustRun(t, "list", "--json")
	var res listResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Current != "prod" || !reflect.DeepEqual(res.Contexts, []string{"dev", "prod"}) {
		t.Errorf("list --json = %+v", res)
	}
}

func TestCLI(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, stderr := e.mustRun(t, "cli", "get"); !strings.Contains(stderr, "No CLI context") {
		t.Errorf("cli get on empty store stderr = %q", stderr)
	}

	e.mustRun(t, "cli", "set", "env=prod", "org=a")
	e.mustRun(t, "cli", "set", "org=b")

	out, _ := e.mustRun(t, "cli", "get", "--json")
	if got, want := decodeJSON(t, out), map[string]any{"env": "prod", "org": "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("cli get after merge = %v, want %v", got, want)
	}

	e.mustRun(t, "cli", "set", "--replace", "env=stage")
	out, _ = e.mustRun(t, "cli", "get")
	if got, want := decodeJSON(t, out), map[string]any{"env": "stage"}; !reflect.DeepEqual(got, want) {
		t.Errorf("cli get after replace = %v, want %v", got, want)
	}

	if out, _ := e.mustRun(t, "cli", "get", "--query", "env"); out != "stage\n" {
		t.Errorf("cli get --query = %q", out)
	}

	// The CLI context is listed like any other
	if out, _ := e.mustRun(t, "list"); !strings.Contains(out, "cli") {
		t.Errorf("list = %q, want cli listed", out)
	}

	_, _, err := e.run(t, "", "cli", "set", "--data", `"not an object"`)
	if err == nil || !strings.Contains(err.Error(), "must be a JSON object") {
		t.Errorf("cli set scalar: error = %v", err)
	}
}

func TestPlugins(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if out, _ := e.mustRun(t, "plugins", "list", "--json"); out != "[]\n" {
		t.Errorf("plugins on empty store = %q, want []", out)
	}

	e.mustRun(t, "plugins", "set", "p1", "p2")
	if out, _ := e.mustRun(t, "plugins", "list"); out != "p1\np2\n" {
		t.Errorf("plugins list = %q", out)
	}

	e.mustRun(t, "plugins", "clear")
	if out, _ := e.mustRun(t, "plugins", "ls", "--json"); out != "[]\n" {
		t.Errorf("plugins after clear = %q, want []", out)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "dev", "a=1")
	e.mustRun(t, "use", "dev")

	_, stderr := e.mustRun(t, "rm", "dev")
	if !strings.Contains(stderr, "was the current context") {
		t.Errorf("delete stderr = %q, want current warning", stderr)
	}
	if _, _, err := e.run(t, "", "get", "dev"); err == nil {
		t.Error("get after delete should fail")
	}
}

func TestDoctor(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "use", "ghost")

	out, _ := e.mustRun(t, "doctor")
	if !strings.Contains(out, `current context "ghost" does not exist`) {
		t.Errorf("doctor output = %q", out)
	}

	out, _ = e.mustRun(t, "doctor", "--fix", "--yes")
	if !strings.Contains(out, "Fixed 1 issues") {
		t.Errorf("doctor --fix output = %q", out)
	}

	if out, _ := e.mustRun(t, "current"); out != "" {
		t.Errorf("current after fix = %q, want empty", out)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out, _ := e.mustRun(t, "config", "show", "--json")
	var got config.Config
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if want := filepath.Join(e.dir, "work", config.DefaultLocalFile); got.Store.LocalFile != want {
		t.Errorf("store.local_file = %q, want %q", got.Store.LocalFile, want)
	}
	if got.Keys != ims.DefaultKeyNames() {
		t.Errorf("keys = %+v", got.Keys)
	}

	out, _ = e.mustRun(t, "config", "init", "--stdout")
	if out != config.DefaultConfig() {
		t.Error("config init --stdout did not print the default config")
	}
}

func TestVerboseAndQuiet(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, _, err := e.run(t, "", "-v", "-q", "current"); err == nil {
		t.Error("expected error for --verbose with --quiet")
	}

	_, stderr := e.mustRun(t, "-q", "use", "dev")
	if stderr != "" {
		t.Errorf("quiet stderr = %q, want empty", stderr)
	}

	_, stderr = e.mustRun(t, "-v", "current")
	if !strings.Contains(stderr, "store reloaded") {
		t.Errorf("verbose stderr = %q, want debug lines", stderr)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "dev", "a=1")
	e.mustRun(t, "set", "prod", "a=1")

	out, _ := e.mustRun(t, "__complete", "use", "p")
	if !strings.Contains(out, "prod") || strings.Contains(out, "dev") {
		t.Errorf("completion = %q, want prod only", out)
	}

	out, _ = e.mustRun(t, "completion", "bash")
	if !strings.Contains(out, "imsctx") {
		t.Error("bash completion script does not mention imsctx")
	}
}

func TestList_Long(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	e.mustRun(t, "set", "dev", "a=1", "b=2")
	e.mustRun(t, "set", "dev", "a=1", "--local")
	e.mustRun(t, "set", "prod", "a=1")

	out, _ := e.mustRun(t, "list", "-l")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}
	if fields := strings.Fields(lines[1]); !slices.Equal(fields, []string{"dev", "local,global", "2"}) {
		t.Errorf("dev row = %q", fields)
	}
	if fields := strings.Fields(lines[2]); !slices.Equal(fields, []string{"prod", "global", "1"}) {
		t.Errorf("prod row = %q", fields)
	}
}
