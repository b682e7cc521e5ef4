package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/subdeck/internal/auth"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	tu "github.com/desertthunder/subdeck/internal/testing"
	"github.com/desertthunder/subdeck/internal/ui"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("requireSession", func(t *testing.T) {
		t.Run("fails without persisted session", func(t *testing.T) {
			store, err := auth.NewSessionStore(t.TempDir())
			if err != nil {
				t.Fatalf("failed to create store: %v", err)
			}

			engine := auth.NewEngine(auth.EngineConfig{ClientID: "client"}, store, nil)
			runner := NewRunner(RunnerOpts{
				Engine: engine,
				Output: &bytes.Buffer{},
			})

			_, err = runner.requireSession(context.Background())
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("watchSession", func(t *testing.T) {
		t.Run("installs the expiry hook before validation starts", func(t *testing.T) {
			store, err := auth.NewSessionStore(t.TempDir())
			if err != nil {
				t.Fatalf("failed to create store: %v", err)
			}

			engine := auth.NewEngine(auth.EngineConfig{ClientID: "client"}, store, nil)
			runner := NewRunner(RunnerOpts{
				Engine: engine,
				Output: &bytes.Buffer{},
			})

			p := tea.NewProgram(ui.NewModel(context.Background(), nil))
			cancel := runner.watchSession(context.Background(), p)
			defer cancel()

			if engine.OnExpired == nil {
				t.Error("expected the session-expiry hook to be installed")
			}
		})
	})
}

func TestSubsHelpers(t *testing.T) {
	t.Run("parseSortMode", func(t *testing.T) {
		for _, tc := range []struct {
			input string
			valid bool
		}{
			{"", true},
			{"title", true},
			{"newest", true},
			{"subscribers", true},
			{"views", false},
		} {
			_, err := parseSortMode(tc.input)
			if tc.valid && err != nil {
				t.Errorf("parseSortMode(%q) unexpected error: %v", tc.input, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("parseSortMode(%q) expected error", tc.input)
			}
		}
	})

	t.Run("filterSubscriptions", func(t *testing.T) {
		subs := []models.Subscription{
			{ID: "1", Title: "Go Time"},
			{ID: "2", Title: "Rustacean Station"},
			{ID: "3", Title: "The Go Gopher Show"},
		}

		matched := filterSubscriptions(subs, "go")
		if len(matched) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(matched))
		}

		all := filterSubscriptions(subs, "")
		if len(all) != 3 {
			t.Errorf("empty query should return everything, got %d", len(all))
		}

		none := filterSubscriptions(subs, "jazz")
		if len(none) != 0 {
			t.Errorf("expected no matches, got %d", len(none))
		}
	})
}
