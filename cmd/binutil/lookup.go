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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "Look up surface forms",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "sentence-start",
			Usage:   "treat each word as the first word of a sentence",
			Aliases: []string{"s"},
		},
		&cli.BoolFlag{
			Name:    "ksnid",
			Usage:   "show the augmented KRISTÍNsnid attributes",
			Aliases: []string{"k"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.ShowSubcommandHelp(c)
		}
		b, err := openEngine(c)
		if err != nil {
			return err
		}
		defer b.Close()

		for _, word := range c.Args().Slice() {
			if c.Bool("ksnid") {
				key, ks := b.LookupKsnid(word, c.Bool("sentence-start"), false)
				fmt.Println(key)
				tbl := table.New("LEMMA", "ID", "CLASS", "DOMAIN", "SURFACE", "TAG", "GRADE", "PUB")
				for _, k := range ks {
					tbl.AddRow(k.Lemma, k.ID, k.Cat, k.Domain, k.Surface, k.Tag, k.Correctness, k.Publication)
				}
				tbl.Print()
			} else {
				key, entries := b.Lookup(word, c.Bool("sentence-start"), false)
				fmt.Println(key)
				tbl := table.New("LEMMA", "ID", "CLASS", "DOMAIN", "SURFACE", "TAG")
				for _, e := range entries {
					tbl.AddRow(e.Lemma, e.ID, e.Cat, e.Domain, e.Surface, e.Tag)
				}
				tbl.Print()
			}
			fmt.Println()
		}
		return nil
	},
}

var catsCommand = &cli.Command{
	Name:      "cats",
	Usage:     "Show the word classes of surface forms",
	ArgsUsage: "WORD...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.ShowSubcommandHelp(c)
		}
		b, err := openEngine(c)
		if err != nil {
			return err
		}
		defer b.Close()

		tbl := table.New("WORD", "CLASSES")
		for _, word := range c.Args().Slice() {
			tbl.AddRow(word, b.LookupCats(word, false))
		}
		tbl.Print()
		return nil
	},
}
