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
	"errors"
	"os"
	"time"

	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/spf13/cobra"
)

func getGazettalCmd() *cobra.Command {
	gazettalCmd := &cobra.Command{
		Use:   "gazettal",
		Short: "Manage conservation status gazettals",
	}
	gazettalCmd.AddCommand(getGazettalCreateCmd())
	return gazettalCmd
}

type gazettalFlags struct {
	taxon, community uint
	categories       []uint
	criteria         []uint
	proposed         string
	reviewDue        string
	actor            string
	comment          string
}

func getGazettalCreateCmd() *cobra.Command {
	var f gazettalFlags

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Propose a new gazettal of a taxon or a community",
		Long: `Create inserts a gazettal in the "proposed" state, attaches its
conservation categories and criteria, and computes its label.

Examples:
  wastd gazettal create --taxon 1 --category 3 --criterion 7
  wastd gazettal create --community 2 --category 5 --comment "WAWCA listing"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGazettalCreate(f)
		},
	}

	fl := createCmd.Flags()
	fl.UintVar(&f.taxon, "taxon", 0, "id of the taxon")
	fl.UintVar(&f.community, "community", 0, "id of the community")
	fl.UintSliceVar(&f.categories, "category", nil,
		"id of a conservation category, can be repeated")
	fl.UintSliceVar(&f.criteria, "criterion", nil,
		"id of a conservation criterion, can be repeated")
	fl.StringVar(&f.proposed, "proposed-on", "",
		"date of the proposal (YYYY-MM-DD), default today")
	fl.StringVar(&f.reviewDue, "review-due", "",
		"date of the next review (YYYY-MM-DD)")
	fl.StringVarP(&f.actor, "actor", "a", os.Getenv("USER"),
		"user proposing the gazettal")
	fl.StringVar(&f.comment, "comment", "", "first line of the approval log")
	createCmd.MarkFlagsMutuallyExclusive("taxon", "community")
	createCmd.MarkFlagsOneRequired("taxon", "community")

	return createCmd
}

func runGazettalCreate(f gazettalFlags) error {
	ctx := context.Background()

	in := workflow.GazettalInput{
		CategoryIDs:  f.categories,
		CriterionIDs: f.criteria,
		Actor:        f.actor,
		Comment:      f.comment,
	}
	var err error
	if in.ProposedOn, err = parseDate(f.proposed); err != nil {
		return fail(err)
	}
	if in.ReviewDue, err = parseDate(f.reviewDue); err != nil {
		return fail(err)
	}

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()
	svc := ioworkflow.New(op.GORM(), cfg)

	var res any
	switch {
	case f.taxon > 0:
		in.SubjectID = f.taxon
		res, err = svc.CreateTaxonGazettal(ctx, in)
	case f.community > 0:
		in.SubjectID = f.community
		res, err = svc.CreateCommunityGazettal(ctx, in)
	default:
		err = errors.New("taxon or community id is required")
	}
	if err != nil {
		return fail(err)
	}
	return printJSON(res)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
