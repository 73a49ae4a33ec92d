package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smartfill/internal/domain"
	"smartfill/internal/shell"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [execution-arn]",
		Short: "Check a pipeline execution's status once",
		Long: "Performs one status check against the orchestration service. With no\n" +
			"argument, the most recent submission from the local session history is\n" +
			"checked.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			arn := ""
			if len(args) == 1 {
				arn = args[0]
			} else {
				if app.deps.History == nil {
					return errors.New("no execution ARN given and session history is unavailable")
				}
				latest, ok, err := app.deps.History.Latest()
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("no execution ARN given and no previous submission found")
				}
				arn = latest.ExecutionARN
				fmt.Fprintln(cmd.OutOrStdout(), "Session:", latest.SessionID)
			}

			exec, err := app.deps.Poller.Check(cmd.Context(), domain.ExecutionHandle{ARN: arn})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Current status:", exec.Status)
			if exec.Status.Terminal() {
				if app.deps.History != nil {
					_ = app.deps.History.UpdateStatus(exec.ARN, string(exec.Status))
				}
				fmt.Fprintln(cmd.OutOrStdout(), shell.RenderOutcome(exec))
			}
			return nil
		},
	}
}
