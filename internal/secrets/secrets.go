// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and service addresses from a directory of
// plain-text files. Each file holds one secret: the filename is the key
// name and the trimmed contents are the value.
//
// Recognised keys: gemini-api-key, ollama-host, model-endpoint.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// Key file names understood by Apply.
const (
	GeminiAPIKey  = "gemini-api-key"
	OllamaHost    = "ollama-host"
	ModelEndpoint = "model-endpoint"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply copies recognised secrets into cfg. Values already set by the
// config file, environment, or flags win.
func Apply(secrets map[string]string, cfg *types.Config) {
	setIfEmpty(&cfg.Summary.APIKey, secrets[GeminiAPIKey])
	setIfEmpty(&cfg.Embedding.Host, secrets[OllamaHost])
	setIfEmpty(&cfg.Summary.Host, secrets[OllamaHost])
	setIfEmpty(&cfg.Structure.Model.Endpoint, secrets[ModelEndpoint])
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
