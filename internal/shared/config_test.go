package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "subdeck.db" {
			t.Errorf("expected database path subdeck.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.RedirectURI != "http://localhost:3000/callback" {
			t.Errorf("expected loopback redirect URI, got %s", config.Credentials.YouTube.RedirectURI)
		}

		if config.Storage.Dir != "~/.subdeck" {
			t.Errorf("expected storage dir ~/.subdeck, got %s", config.Storage.Dir)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[storage]
dir = "/custom/state"

[credentials.youtube]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:8080/callback"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.YouTube.ClientID)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("StorageDir", func(t *testing.T) {
		t.Run("expands tilde", func(t *testing.T) {
			config := DefaultConfig()

			dir, err := config.StorageDir()
			if err != nil {
				t.Fatalf("StorageDir failed: %v", err)
			}

			home, _ := os.UserHomeDir()
			if dir != filepath.Join(home, ".subdeck") {
				t.Errorf("expected home-relative dir, got %s", dir)
			}
		})

		t.Run("passes absolute paths through", func(t *testing.T) {
			config := DefaultConfig()
			config.Storage.Dir = "/var/lib/subdeck"

			dir, err := config.StorageDir()
			if err != nil {
				t.Fatalf("StorageDir failed: %v", err)
			}
			if dir != "/var/lib/subdeck" {
				t.Errorf("expected /var/lib/subdeck, got %s", dir)
			}
		})

		t.Run("empty dir defaults to home", func(t *testing.T) {
			config := DefaultConfig()
			config.Storage.Dir = ""

			dir, err := config.StorageDir()
			if err != nil {
				t.Fatalf("StorageDir failed: %v", err)
			}

			home, _ := os.UserHomeDir()
			if dir != filepath.Join(home, ".subdeck") {
				t.Errorf("expected default home dir, got %s", dir)
			}
		})
	})
}
