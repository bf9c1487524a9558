package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/etym"
	"github.com/corrafig/louskubot/internal/log"
	"github.com/corrafig/louskubot/internal/lookup"
	"github.com/corrafig/louskubot/internal/output"
	"github.com/corrafig/louskubot/internal/ui/styles"
)

func newLookupCmd() *cobra.Command {
	var (
		repoFlag        string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "lookup [query]",
		Short:   "Search the generated etymology data",
		GroupID: GroupData,
		Args:    cobra.MaximumNArgs(1),
		Long: `Fuzzy-search the words in etymologies.json and print their
definitions with a link to the Kotus dictionary article.

Without a query, all entries are listed.`,
		Example: `  louskubot lookup tammi
  louskubot lookup tervas --copy   # copy the article URL to the clipboard
  louskubot lookup                 # list everything`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			repo := repoFlag
			if repo == "" {
				repo = cfg.RepoPath(config.WorkDirFromContext(ctx))
			}

			doc, err := etym.LoadDocument(filepath.Join(repo, cfg.EtymologiesFile))
			if err != nil {
				return err
			}
			ix := lookup.NewIndex(doc)
			if ix.Len() == 0 {
				return fmt.Errorf("no etymology data in %s (run 'louskubot etymologies' first)", repo)
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			matches := ix.Search(query)
			if len(matches) == 0 {
				return fmt.Errorf("no matches for %q", query)
			}

			for _, e := range matches {
				if e.Etymology == nil {
					out.Printf("%s: no dictionary entry\n", styles.FormatArticleLink(e.Label(), ""))
					continue
				}
				out.Printf("%s: %s\n", styles.FormatArticleLink(e.Label(), e.Etymology.URL), e.Etymology.Definition)
			}

			if copyToClipboard {
				l := log.FromContext(ctx)
				if url := firstArticleURL(matches); url != "" {
					if err := clipboard.WriteAll(url); err != nil {
						l.Warnf("failed to copy to clipboard: %v", err)
					}
				} else {
					l.Warnf("no article URL to copy")
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository working copy (default: configured repo or current directory)")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the best match's article URL to the clipboard")

	return cmd
}

func firstArticleURL(matches []lookup.Entry) string {
	for _, e := range matches {
		if e.Etymology != nil && e.Etymology.URL != "" {
			return e.Etymology.URL
		}
	}
	return ""
}
