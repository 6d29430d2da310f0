package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce  sync.Once
	kanbanPath string
	buildErr   error
)

// BuildKanban builds the kanban binary once and returns its path.
func BuildKanban(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "kanban-bin-")
		if err != nil {
			buildErr = err
			return
		}

		kanbanPath = filepath.Join(binDir, "kanban")
		cmd := exec.Command("go", "build", "-o", kanbanPath, "./cmd/kanban")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build kanban: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return kanbanPath
}

// SetupScriptEnv points HOME at a fresh directory inside the script's work
// dir and exposes the built binary as $KANBAN.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("KANBAN", BuildKanban(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	env.Setenv("KANBAN_DEBUG", "")
	env.Setenv("KANBAN_CONFIG_DIR", "")
	env.Setenv("VISUAL", "")
	env.Setenv("EDITOR", "true")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdJSONID reads JSON output and stores an ID in an env var. With a
// title, it searches the whole document for the object with that title;
// without one, the document must be an object with an id.
func CmdJSONID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("jsonid does not support negation")
	}
	if len(args) != 2 && len(args) != 3 {
		ts.Fatalf("usage: jsonid FILE VAR [TITLE]")
	}

	var doc any
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &doc); err != nil {
		ts.Fatalf("parse %s: %v", args[0], err)
	}

	if len(args) == 2 {
		object, ok := doc.(map[string]any)
		if !ok {
			ts.Fatalf("%s is not a JSON object", args[0])
		}
		id, _ := object["id"].(string)
		if id == "" {
			ts.Fatalf("%s has no id", args[0])
		}
		ts.Setenv(args[1], id)
		return
	}

	id, ok := findIDByTitle(doc, args[2])
	if !ok {
		ts.Fatalf("object with title %q not found in %s", args[2], args[0])
	}
	ts.Setenv(args[1], id)
}

func findIDByTitle(doc any, title string) (string, bool) {
	switch value := doc.(type) {
	case map[string]any:
		if value["title"] == title {
			if id, ok := value["id"].(string); ok {
				return id, true
			}
		}
		for _, child := range value {
			if id, ok := findIDByTitle(child, title); ok {
				return id, true
			}
		}
	case []any:
		for _, child := range value {
			if id, ok := findIDByTitle(child, title); ok {
				return id, true
			}
		}
	}
	return "", false
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
