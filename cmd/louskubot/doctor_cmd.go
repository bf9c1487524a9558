package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/epithets"
	"github.com/corrafig/louskubot/internal/etym"
	"github.com/corrafig/louskubot/internal/git"
	"github.com/corrafig/louskubot/internal/storage"
)

func newDoctorCmd() *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose sync environment issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose issues that would make a sync run fail.

Checks:
- git is installed
- configuration is valid
- the working copy is a git repository
- the artifact files parse
- the configured generator is runnable
- the state directory is writable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			var issues int

			fmt.Println("Running diagnostics...")
			fmt.Println()

			if err := git.CheckGit(); err != nil {
				fmt.Printf("❌ Git not found: %v\n", err)
				issues++
			} else {
				fmt.Println("✓ Git is available")
			}

			if err := cfg.Validate(); err != nil {
				fmt.Printf("❌ Invalid configuration: %v\n", err)
				issues++
			} else {
				fmt.Println("✓ Configuration is valid")
			}

			repo := repoFlag
			if repo == "" {
				repo = cfg.RepoPath(config.WorkDirFromContext(ctx))
			}
			if !git.IsInsideRepoPath(ctx, repo) {
				fmt.Printf("❌ Not a git repository: %s\n", repo)
				issues++
			} else {
				fmt.Printf("✓ Working copy is a git repository (%s)\n", repo)
			}

			if _, err := epithets.LoadFile(filepath.Join(repo, cfg.EpithetsFile)); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					fmt.Printf("⚠ %s not present yet (run 'louskubot epithets')\n", cfg.EpithetsFile)
				} else {
					fmt.Printf("❌ Invalid %s: %v\n", cfg.EpithetsFile, err)
					issues++
				}
			} else {
				fmt.Printf("✓ %s parses\n", cfg.EpithetsFile)
			}

			if _, err := etym.LoadDocument(filepath.Join(repo, cfg.EtymologiesFile)); err != nil {
				fmt.Printf("❌ Invalid %s: %v\n", cfg.EtymologiesFile, err)
				issues++
			} else {
				fmt.Printf("✓ %s parses (or will be created)\n", cfg.EtymologiesFile)
			}

			if cfg.Generator.Command != "" {
				if _, err := exec.LookPath("sh"); err != nil {
					fmt.Printf("❌ Generator configured but sh not found: %v\n", err)
					issues++
				} else {
					fmt.Printf("✓ External generator: %s\n", cfg.Generator.Command)
				}
			} else {
				fmt.Printf("✓ Built-in generator against %s\n", cfg.Kotus.BaseURL)
			}

			if dir, err := storage.Dir(); err != nil {
				fmt.Printf("❌ State directory not writable: %v\n", err)
				issues++
			} else {
				fmt.Printf("✓ State directory: %s\n", dir)
			}

			fmt.Println()
			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}

			fmt.Println("All checks passed")
			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository working copy (default: configured repo or current directory)")

	return cmd
}
