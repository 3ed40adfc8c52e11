// Copyright 2025 Miðeind ehf.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the YAML configuration file layout:
//
//	image: /data/compressed.bin
//	prefixes: /data/prefixes.dawg
//	suffixes: /data/suffixes.dawg
//	options:
//	  add_compounds: true
//	  replace_z: true
//	  only_bin: false
type config struct {
	Image    string `yaml:"image"`
	Prefixes string `yaml:"prefixes"`
	Suffixes string `yaml:"suffixes"`
	Options  struct {
		AddCompounds bool `yaml:"add_compounds"`
		ReplaceZ     bool `yaml:"replace_z"`
		OnlyBin      bool `yaml:"only_bin"`
	} `yaml:"options"`
}

func defaultConfig() *config {
	cfg := &config{}
	cfg.Options.AddCompounds = true
	cfg.Options.ReplaceZ = true
	return cfg
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config: %w", ErrBinutil, err)
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %q: %w", ErrBinutil, path, err)
	}
	return cfg, nil
}
