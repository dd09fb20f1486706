package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

func newEditCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit <data>",
		Short: "Edit a data file interactively",
		Long: `edit prompts for every field of the data file and writes the result back.
Use --output to write somewhere other than the input file, or "-" to print
the result as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEditor(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			session, err := prompt.NewSession(e,
				prompt.WithPromptDriver(driver),
				prompt.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if err := session.Run(cmd.Context()); err != nil {
				return err
			}

			result := e.Commit()
			target := output
			if target == "" {
				target = args[0]
			}
			a.logger.Info("edit session finished",
				zap.Int("edits", session.Edits()),
				zap.Bool("valid", e.IsValid()),
				zap.String("output", target),
			)

			if target == "-" {
				raw, err := loader.MarshalData(result, ".json")
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := loader.WriteData(target, result); err != nil {
				return fmt.Errorf("formstate: write %s: %w", target, err)
			}
			return nil
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (defaults to the input file)`)
	return cmd
}
