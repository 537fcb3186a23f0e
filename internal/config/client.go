package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	HistoryBackendFile   = "file"
	HistoryBackendSQLite = "sqlite"

	defaultAPIBaseURL = "http://localhost:8080"
)

// ClientSettings configures the lsl command line client.
type ClientSettings struct {
	APIBaseURL     string
	HistoryBackend string
	HistoryPath    string
	Category       string
	EntityID       string
	FFProbeBinary  string
}

// LoadClient resolves the client configuration once at startup. Every key is optional.
func LoadClient() (*ClientSettings, error) {
	readEnvFile()

	backend := strings.ToLower(getString("LSL_HISTORY_BACKEND", HistoryBackendFile))
	if backend != HistoryBackendFile && backend != HistoryBackendSQLite {
		return nil, fmt.Errorf("unsupported LSL_HISTORY_BACKEND %q", backend)
	}

	historyPath := getString("LSL_HISTORY_PATH", "")
	if historyPath == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		name := "upload-history.json"
		if backend == HistoryBackendSQLite {
			name = "upload-history.db"
		}
		historyPath = filepath.Join(dir, name)
	}

	return &ClientSettings{
		APIBaseURL:     strings.TrimRight(getString("LSL_API_BASE_URL", defaultAPIBaseURL), "/"),
		HistoryBackend: backend,
		HistoryPath:    historyPath,
		Category:       getString("LSL_CATEGORY", "conversation"),
		EntityID:       getString("LSL_ENTITY_ID", "web_user"),
		FFProbeBinary:  getString("LSL_FFPROBE", "ffprobe"),
	}, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".lsl"), nil
}
