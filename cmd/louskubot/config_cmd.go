package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/output"
)

func newConfigCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show the effective configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Show the effective configuration and where it was loaded from.

Values come from the config file merged over built-in defaults; a
missing config file means defaults only.`,
		Example: `  louskubot config
  louskubot config --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			path := configPath
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					path = "(unknown)"
				}
			}
			if _, err := os.Stat(path); err != nil {
				out.Printf("Config file: %s (not present, using defaults)\n", path)
			} else {
				out.Printf("Config file: %s\n", path)
			}
			out.Println()

			out.Printf("repo: %s\n", cfg.RepoPath("(current directory)"))
			out.Printf("epithets_file: %s\n", cfg.EpithetsFile)
			out.Printf("etymologies_file: %s\n", cfg.EtymologiesFile)
			out.Printf("upstream.url: %s\n", cfg.Upstream.URL)
			out.Printf("upstream.branch: %s\n", cfg.Upstream.Branch)
			out.Printf("identity: %s <%s>\n", cfg.Identity.Name, cfg.Identity.Email)
			out.Printf("commit.epithet_subject: %s\n", cfg.Commit.EpithetSubject)
			out.Printf("commit.etymology_subject: %s\n", cfg.Commit.EtymologySubject)
			out.Printf("commit.push: %v\n", cfg.Commit.Push)
			if cfg.Generator.Command != "" {
				out.Printf("generator.command: %s\n", cfg.Generator.Command)
			} else {
				out.Printf("generator.command: (built-in Kotus generator)\n")
			}
			out.Printf("generator.timeout: %s\n", cfg.Generator.Timeout.Std())
			out.Printf("kotus.base_url: %s\n", cfg.Kotus.BaseURL)
			out.Printf("kotus.user_agent: %s\n", cfg.Kotus.UserAgent)
			out.Printf("kotus.timeout: %s\n", cfg.Kotus.Timeout.Std())
			out.Printf("kotus.overwrite_existing: %v\n", cfg.Kotus.OverwriteExisting)
			out.Printf("watch.interval: %s\n", cfg.Watch.Interval.Std())

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
