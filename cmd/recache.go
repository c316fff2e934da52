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

	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

func getRecacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recache",
		Short: "Recompute category, criteria and label caches of all gazettals",
		Long: `Recache saves every gazettal again so its caches are computed from the
current categories and criteria. Use it after editing reference data
directly in the database.

Records are processed by jobs_number workers.`,
		Args: cobra.NoArgs,
		RunE: runRecache,
	}
}

func runRecache(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	start := time.Now()

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc := ioworkflow.New(op.GORM(), cfg, ioworkflow.OptProgress(true))
	n, err := svc.Recache(ctx)
	if err != nil {
		return fail(err)
	}

	gn.Info("Recomputed caches of <em>%s</em> gazettals in %s",
		humanize.Comma(int64(n)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
