/*
 * © 2026 Beacon Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/subosito/gotenv"
)

// Load reads the configured env files into the process environment and
// re-reads the settings. Variables that are already set in the environment
// win over file contents.
func (c *Config) Load() {
	files := c.configFiles()
	for _, fileName := range files {
		c.loadFile(fileName)
	}
	c.settingsFromEnv()
}

func (c *Config) loadFile(fileName string) {
	file, err := os.Open(fileName)
	if err != nil {
		c.Logger().Debug().Str("method", "loadFile").Msg("Couldn't load " + fileName)
		return
	}
	defer func() { _ = file.Close() }()

	env := gotenv.Parse(file)
	for k, v := range env {
		_, exists := os.LookupEnv(k)
		if !exists {
			err = os.Setenv(k, v)
			if err != nil {
				c.Logger().Warn().Str("method", "loadFile").Msg("Couldn't set environment variable " + k)
			}
		}
	}
	c.Logger().Debug().Str("method", "loadFile").Msg("loaded " + fileName)
}

func (c *Config) configFiles() []string {
	var files []string
	configFile := c.ConfigFile()
	if configFile != "" {
		files = append(files, configFile)
	}
	files = append(files, filepath.Join(xdg.ConfigHome, "beacon-go", "env"))
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".beacon.env"))
	}
	return files
}
