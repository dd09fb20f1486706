package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/loader"
)

func newGuessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guess <data>",
		Short: "Print a field configuration guessed from a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loader.LoadData(args[0])
			if err != nil {
				return err
			}
			_, guesser, err := a.configs(cmd.Context())
			if err != nil {
				return err
			}
			out, err := loader.MarshalYAML(&loader.Document{Fields: guesser.Guess(data)})
			if err != nil {
				return fmt.Errorf("formstate: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&a.configPath, "config", "c", "", "configuration document supplying ignore settings")
	return cmd
}
