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
	"strconv"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/mideind/go-bin"
)

var variantsCommand = &cli.Command{
	Name:      "variants",
	Usage:     "Enumerate inflection variants of a word form",
	ArgsUsage: "WORD CAT REQUIREMENT...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "lemma",
			Usage: "restrict to the given `LEMMA`",
		},
		&cli.IntFlag{
			Name:  "id",
			Usage: "restrict to the given lemma `ID`",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return cli.ShowSubcommandHelp(c)
		}
		b, err := openEngine(c)
		if err != nil {
			return err
		}
		defer b.Close()

		args := c.Args().Slice()
		constraint := &bin.Constraint{
			Lemma: c.String("lemma"),
			ID:    c.Int("id"),
		}
		ks := b.LookupVariants(args[0], args[1], args[2:], constraint)
		tbl := table.New("LEMMA", "ID", "CLASS", "SURFACE", "TAG")
		for _, k := range ks {
			tbl.AddRow(k.Lemma, k.ID, k.Cat, k.Surface, k.Tag)
		}
		tbl.Print()
		return nil
	},
}

var idCommand = &cli.Command{
	Name:      "id",
	Usage:     "Look up lemmas by BÍN id",
	ArgsUsage: "ID...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.ShowSubcommandHelp(c)
		}
		b, err := openEngine(c)
		if err != nil {
			return err
		}
		defer b.Close()

		tbl := table.New("ID", "LEMMA", "CLASS", "DOMAIN", "SURFACE", "TAG")
		for _, arg := range c.Args().Slice() {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: bad id %q: %w", ErrBinutil, arg, err)
			}
			for _, k := range b.LookupID(id) {
				tbl.AddRow(k.ID, k.Lemma, k.Cat, k.Domain, k.Surface, k.Tag)
			}
		}
		tbl.Print()
		return nil
	},
}
