package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/autofields"
	"github.com/goliatone/go-formstate/pkg/editor"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

var errInvalid = errors.New("formstate: data is invalid")

// app holds flag values and collaborators shared by the subcommands.
type app struct {
	verbose     bool
	configPath  string
	openapiPath string
	schemaName  string

	logger *zap.Logger
	driver prompt.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formstate",
		Short: "Edit and validate JSON or YAML documents with form state reconciliation",
		Long: `formstate binds a field configuration to a JSON or YAML document.
It can guess a configuration from data, validate data, run an interactive
edit session and watch a data file for upstream changes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				a.logger = newLogger(a.verbose)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable development logging")

	root.AddCommand(newGuessCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newWatchCmd(a))
	return root
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// addSourceFlags registers the flags selecting where field configuration
// comes from.
func (a *app) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.configPath, "config", "c", "", "field configuration document (JSON or YAML)")
	cmd.Flags().StringVar(&a.openapiPath, "openapi", "", "OpenAPI document providing the field configuration")
	cmd.Flags().StringVar(&a.schemaName, "schema", "", "component schema name used with --openapi")
	cmd.MarkFlagsMutuallyExclusive("config", "openapi")
	cmd.MarkFlagsRequiredTogether("openapi", "schema")
}

// configs resolves field configuration from the flags. A nil result means
// the configuration is guessed from data.
func (a *app) configs(ctx context.Context) ([]*model.FieldConfig, *autofields.Guesser, error) {
	if a.openapiPath != "" {
		doc, err := openapi.LoadFile(ctx, a.openapiPath)
		if err != nil {
			return nil, nil, err
		}
		cfgs, err := openapi.FieldsFromSchema(doc, a.schemaName)
		if err != nil {
			return nil, nil, err
		}
		return cfgs, autofields.New(), nil
	}
	if a.configPath != "" {
		doc, err := loader.LoadFile(a.configPath)
		if err != nil {
			return nil, nil, err
		}
		guesser, err := doc.Guesser()
		if err != nil {
			return nil, nil, err
		}
		if len(doc.Fields) == 0 {
			return nil, guesser, nil
		}
		return doc.Fields, guesser, nil
	}
	return nil, autofields.New(), nil
}

// openEditor loads data and builds an editor over it.
func (a *app) openEditor(ctx context.Context, dataPath string) (*editor.Editor, error) {
	data, err := loader.LoadData(dataPath)
	if err != nil {
		return nil, err
	}
	cfgs, guesser, err := a.configs(ctx)
	if err != nil {
		return nil, err
	}
	e, err := editor.New(data, cfgs,
		editor.WithLogger(a.logger),
		editor.WithGuesser(guesser),
	)
	if err != nil {
		return nil, fmt.Errorf("formstate: %w", err)
	}
	a.logger.Debug("editor ready",
		zap.String("data", dataPath),
		zap.Int("fields", len(e.Configs())),
	)
	return e, nil
}
