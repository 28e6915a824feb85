package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	platformlogging "portfolio-server-go/internal/platform/logging"
	platformstorage "portfolio-server-go/internal/platform/storage"
)

// setTestEnv points every external knob at a temp dir so the graph can
// run without a config file or a pre-provisioned database.
func setTestEnv(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("PORTFOLIO_SECRET", "bootstrap-test-secret")
	t.Setenv("PORTFOLIO_ADMIN_USERNAME", "admin")
	t.Setenv("PORTFOLIO_ADMIN_PASSWORD", "correct-horse")
	t.Setenv("PORTFOLIO_DB_PATH", filepath.Join(tmp, "portfolio.db"))
	t.Setenv("PORTFOLIO_LOG_DIR", filepath.Join(tmp, "logs"))
	t.Setenv("PORTFOLIO_LOG_FILE", "test.log")
	t.Setenv("PORTFOLIO_CACHE_DRIVER", "memory")
}

func TestSmokeLoadConfigAndLogger(t *testing.T) {
	setTestEnv(t)

	config, logger, err := loadConfigAndLogger()
	if err != nil {
		t.Fatalf("loadConfigAndLogger failed: %v", err)
	}
	if config == nil {
		t.Fatal("config is nil")
	}
	if logger == nil {
		t.Fatal("logger is nil")
	}
	logger.Close()
}

func TestInitGraphOrder(t *testing.T) {
	steps := InitGraph()
	want := []string{
		"config:load",
		"logging:init-provider",
		"observability:setup-hooks",
		"storage:open-database",
		"storage:seed-admin",
		"cache:init-driver",
		"content:init-service",
		"auth:init-gate",
		"events:register-handlers",
	}
	if len(steps) != len(want) {
		t.Fatalf("unexpected step count: got %d want %d", len(steps), len(want))
	}
	for i, step := range steps {
		if step.ID != want[i] {
			t.Fatalf("step %d mismatch: got %s want %s", i, step.ID, want[i])
		}
	}

	// Every declared dependency must come earlier in the slice.
	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if !seen[dep] {
				t.Fatalf("step %s depends on %s which does not precede it", step.ID, dep)
			}
		}
		seen[step.ID] = true
	}
}

func TestExecuteInitGraph(t *testing.T) {
	setTestEnv(t)

	state := &appState{}
	if err := executeInitSteps(context.Background(), InitGraph(), state); err != nil {
		t.Fatalf("executeInitSteps failed: %v", err)
	}
	defer func() {
		if state.cache != nil {
			state.cache.Close(context.Background())
		}
		platformstorage.CloseDatabase()
		state.logger.Close()
	}()

	if state.config == nil {
		t.Fatal("config is nil after init")
	}
	if state.logger == nil {
		t.Fatal("logger is nil after init")
	}
	if state.cache == nil {
		t.Fatal("cache is nil after init")
	}
	if state.content == nil {
		t.Fatal("content service is nil after init")
	}
	if state.gate == nil || state.issuer == nil || state.credentials == nil {
		t.Fatal("auth gate not fully initialised")
	}
	if state.cookies == nil || state.cookies.Name == "" {
		t.Fatal("session cookies not configured")
	}
	if state.obsShutdown == nil {
		t.Fatal("observability shutdown hook is nil after init")
	}

	// The seed step must have provisioned the admin account.
	ok, err := state.credentials.Verify(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("credential verify failed: %v", err)
	}
	if !ok {
		t.Fatal("seeded admin credentials do not verify")
	}
}

func TestExecuteInitStepsRejectsUnmetDependency(t *testing.T) {
	steps := []initStep{
		{
			ID:        "b",
			DependsOn: []string{"a"},
			Execute:   func(context.Context, *appState) error { return nil },
		},
	}
	if err := executeInitSteps(context.Background(), steps, &appState{}); err == nil {
		t.Fatal("expected unmet dependency error")
	}
}

func TestLogBootstrapGraphOutput(t *testing.T) {
	tmp := t.TempDir()
	logger, err := platformlogging.New(platformlogging.Config{
		Level: "debug",
		Dir:   tmp,
		File:  "graph.log",
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logBootstrapGraph(InitGraph(), logger)
	logger.Close()

	data, err := os.ReadFile(filepath.Join(tmp, "graph.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, id := range []string{
		"config:load",
		"storage:open-database",
		"auth:init-gate",
		"events:register-handlers",
	} {
		if !strings.Contains(content, id) {
			t.Fatalf("expected graph output to contain %q, got: %s", id, content)
		}
	}
}
