/*
Copyright © 2025 Department of Biodiversity, Conservation and Attractions

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/dbca-wa/wastd/internal/ioseed"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

func getSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import reference data from a YAML seed file",
		Long: `Seed imports conservation lists with their categories and criteria,
taxa and threatened ecological communities.

Records are matched by natural key, so a file can be imported again after
editing. Taxon names are parsed to fill canonical forms and authorships.

Examples:
  wastd seed reference.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}
}

func runSeed(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	data, err := ioseed.Load(args[0])
	if err != nil {
		return fail(err)
	}

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	imp := ioseed.New(op.GORM(), cfg, true)
	stats, err := imp.Import(ctx, data)
	if err != nil {
		return fail(err)
	}

	gn.Info("Imported <em>%s</em> lists, <em>%s</em> categories, "+
		"<em>%s</em> criteria, <em>%s</em> taxa, <em>%s</em> communities in %s",
		humanize.Comma(int64(stats.Lists)),
		humanize.Comma(int64(stats.Categories)),
		humanize.Comma(int64(stats.Criteria)),
		humanize.Comma(int64(stats.Taxa)),
		humanize.Comma(int64(stats.Communities)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
