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

	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

const kindsHelp = `Kinds:
  taxon-gazettal, community-gazettal  approval workflow
  encounter                           quality control
  threat                              curation`

func getTransitionCmd() *cobra.Command {
	var actor string

	transitionCmd := &cobra.Command{
		Use:   "transition <kind> <id> <operation>",
		Short: "Move a record to another state",
		Long: `Transition executes an operation of the workflow of the record.

The state change, its audit entry and, for gazettals, deactivation of
superseded gazettals are saved in one transaction.

` + kindsHelp + `

Examples:
  wastd transition taxon-gazettal 1 submit_for_panel_review
  wastd transition encounter 42 curate --actor jane`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTransition(args, actor)
		},
	}

	transitionCmd.Flags().StringVarP(&actor, "actor", "a", os.Getenv("USER"),
		"user executing the transition")
	return transitionCmd
}

func runTransition(args []string, actor string) error {
	ctx := context.Background()
	kind, id, err := recordArgs(args)
	if err != nil {
		return fail(err)
	}

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc := ioworkflow.New(op.GORM(), cfg)
	res, err := svc.Transition(ctx, kind, id, fsm.Operation(args[2]), actor)
	if err != nil {
		return fail(err)
	}

	for _, v := range res.Deactivated {
		gn.Info("Superseded %s #%d is now <em>inactive</em>", v.Kind, v.RecordID)
	}
	return printJSON(res)
}

func getAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available <kind> <id>",
		Short: "Show the state of a record and operations legal from it",
		Long: `Available prints the current state and the operations allowed from it.
Gate checks are not evaluated.

` + kindsHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRecordQuery(args,
				func(ctx context.Context, svc workflow.Service, kind string, id uint) (any, error) {
					return svc.Available(ctx, kind, id)
				})
		},
	}
}

func getHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <kind> <id>",
		Short: "Show the audit log of a record",
		Long: `History prints all state transitions of a record, oldest first.

` + kindsHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRecordQuery(args,
				func(ctx context.Context, svc workflow.Service, kind string, id uint) (any, error) {
					return svc.History(ctx, kind, id)
				})
		},
	}
}

type recordQuery func(
	ctx context.Context,
	svc workflow.Service,
	kind string,
	id uint,
) (any, error)

func runRecordQuery(args []string, query recordQuery) error {
	ctx := context.Background()
	kind, id, err := recordArgs(args)
	if err != nil {
		return fail(err)
	}

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	res, err := query(ctx, ioworkflow.New(op.GORM(), cfg), kind, id)
	if err != nil {
		return fail(err)
	}
	return printJSON(res)
}
