package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/report"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <data>",
		Short: "Validate a data file and print a status report",
		Long: `validate checks every field of the data file, ignoring blur state, and
prints one report line per field. The command fails when any field
carries a validation message.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEditor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			e.ForceValidate(true)

			reporter, err := report.New()
			if err != nil {
				return err
			}
			if _, err := reporter.Render(e.Nodes(), e.IsClean(), e.IsValid(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if !e.IsValid() {
				a.logger.Debug("validation failed", zap.String("data", args[0]))
				return errInvalid
			}
			return nil
		},
	}
	a.addSourceFlags(cmd)
	return cmd
}
