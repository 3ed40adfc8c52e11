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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mideind/go-bin"
)

const (
	// ExitCodeSuccess is the successful exit code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrBinutil is a parent error for all command errors.
var ErrBinutil = errors.New("binutil")

// ErrNoImage indicates that no image path was supplied.
var ErrNoImage = fmt.Errorf("%w: no image path; use --image, a config file or BIN_IMAGE", ErrBinutil)

func newBinutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Query a compressed BÍN image.",
		Description: strings.Join([]string{
			"BÍN lookup utility written in Go.",
			"https://github.com/mideind/go-bin",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "image",
				Usage:   "read the compressed image from `FILE`",
				Aliases: []string{"i"},
				EnvVars: []string{"BIN_IMAGE"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read image paths and options from the YAML `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"BIN_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "only-bin",
				Usage: "disable compound analysis and spelling modernisation",
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			lookupCommand,
			catsCommand,
			variantsCommand,
			idCommand,
		},
	}
}

// openEngine opens the engine from the app-level flags and config
// file.
func openEngine(c *cli.Context) (*bin.Bin, error) {
	cfg := defaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if image := c.String("image"); image != "" {
		cfg.Image = image
	}
	if c.Bool("only-bin") {
		cfg.Options.OnlyBin = true
	}
	if cfg.Image == "" {
		return nil, ErrNoImage
	}

	options := *bin.DefaultOptions
	options.Prefixes = cfg.Prefixes
	options.Suffixes = cfg.Suffixes
	options.AddCompounds = cfg.Options.AddCompounds
	options.ReplaceZ = cfg.Options.ReplaceZ
	options.OnlyBin = cfg.Options.OnlyBin

	b, err := bin.Open(cfg.Image, &options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBinutil, err)
	}
	return b, nil
}
