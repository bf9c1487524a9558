package main

import (
	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create a default config file",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Create a commented default config file at
~/.config/louskubot/config.toml.`,
		Example: `  louskubot init       # create the config file
  louskubot init -f    # overwrite an existing config file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}
