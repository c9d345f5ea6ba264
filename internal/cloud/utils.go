// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloud

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPrefix overrides the directory the TOML files are read from.
	EnvConfigPrefix = "ANNOTATOR_CONFIG_PREFIX"
	// EnvRuntime selects the environment overlay file (.env.<runtime>.toml).
	EnvRuntime = "ANNOTATOR_RUNTIME"

	// DefaultConfigPrefix is the config directory relative to the process
	// working directory.
	DefaultConfigPrefix = "configs"
	// DefaultRuntime is used when EnvRuntime is unset.
	DefaultRuntime = "local"

	baseConfigFile = ".env.toml"
)

// GetEnvWithDefault returns the value of the environment variable or the
// given default when it is unset or empty.
func GetEnvWithDefault(name string, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// LoadConfig reads the hierarchical TOML configuration into cfg. The base
// file (.env.toml) is read first and the runtime overlay
// (.env.<runtime>.toml) is decoded over it, so overlays only need to
// declare the values they change. A missing overlay is not an error; a
// missing base file is.
func LoadConfig(cfg *Config) error {
	prefix := GetEnvWithDefault(EnvConfigPrefix, DefaultConfigPrefix)
	runtime := GetEnvWithDefault(EnvRuntime, DefaultRuntime)

	basePath := filepath.Join(prefix, baseConfigFile)
	if !fileExists(basePath) {
		return fmt.Errorf("base configuration file not found: %s", basePath)
	}
	if _, err := toml.DecodeFile(basePath, cfg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", basePath, err)
	}

	overlayPath := filepath.Join(prefix, fmt.Sprintf(".env.%s.toml", runtime))
	if fileExists(overlayPath) {
		if _, err := toml.DecodeFile(overlayPath, cfg); err != nil {
			return fmt.Errorf("failed to decode %s: %w", overlayPath, err)
		}
		slog.Info("loaded configuration", "base", basePath, "overlay", overlayPath)
	} else {
		slog.Info("loaded configuration", "base", basePath)
	}
	return nil
}
