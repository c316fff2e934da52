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
	"os"
	"strings"

	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/spf13/cobra"
)

func getRelateCmd() *cobra.Command {
	var categories, criteria []uint

	relateCmd := &cobra.Command{
		Use:   "relate <kind> <id>",
		Short: "Replace conservation categories and criteria of a gazettal",
		Long: `Relate sets categories and criteria of a gazettal and recomputes its
label. Ids not given are removed from the gazettal.

Examples:
  wastd relate taxon-gazettal 1 --category 3 --criterion 7 --criterion 8
  wastd relate community-gazettal 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRecordQuery(args,
				func(ctx context.Context, svc workflow.Service, kind string, id uint) (any, error) {
					return svc.SetRelations(ctx, kind, id, categories, criteria)
				})
		},
	}

	relateCmd.Flags().UintSliceVar(&categories, "category", nil,
		"id of a conservation category, can be repeated")
	relateCmd.Flags().UintSliceVar(&criteria, "criterion", nil,
		"id of a conservation criterion, can be repeated")
	return relateCmd
}

func getCommentCmd() *cobra.Command {
	var actor string

	commentCmd := &cobra.Command{
		Use:   "comment <kind> <id> <text>...",
		Short: "Append a line to the approval log of a gazettal",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.Join(args[2:], " ")
			return runRecordQuery(args[:2],
				func(ctx context.Context, svc workflow.Service, kind string, id uint) (any, error) {
					return svc.Comment(ctx, kind, id, actor, text)
				})
		},
	}

	commentCmd.Flags().StringVarP(&actor, "actor", "a", os.Getenv("USER"),
		"author of the comment")
	return commentCmd
}
