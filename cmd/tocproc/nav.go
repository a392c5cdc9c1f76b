package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/extract"
	"github.com/thywilljoshua/book-toc/internal/render"
	"github.com/thywilljoshua/book-toc/internal/toc"
)

func navCmd(a *app) *cobra.Command {
	var out string
	var siteName string
	var slugPrefix string
	var tab string
	var fixture bool
	var pages bool
	var useAI bool

	cmd := &cobra.Command{
		Use:   "nav [file|-]",
		Short: "Write Mintlify docs.json navigation for a table of contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *toc.Processed
			if fixture {
				p = extract.SampleToc()
			} else {
				b, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				r, err := a.repairer(cmd.Context(), useAI)
				if err != nil {
					return err
				}
				opts := a.extractOptions(r)
				if extract.Detect(b) == extract.FormatText {
					p, err = extract.ProcessText(cmd.Context(), string(b), opts)
				} else {
					p, err = extract.NewAuto(opts).Extract(cmd.Context(), b)
				}
				if err != nil {
					return err
				}
			}

			path := filepath.Join(out, "docs.json")
			nav := render.Navigation(p, render.NavOptions{SlugPrefix: slugPrefix, Tab: tab})
			if err := render.WriteDocsJSON(path, siteName, nav); err != nil {
				return err
			}
			a.log.Info("Wrote navigation", zap.String("path", path), zap.Int("pages", len(p.FlatEntries)))

			if pages {
				created, err := render.WritePages(out, p, slugPrefix)
				if err != nil {
					return err
				}
				a.log.Info("Wrote page stubs", zap.Int("created", len(created)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory for docs.json")
	cmd.Flags().StringVar(&siteName, "site-name", "", "site name to set in docs.json")
	cmd.Flags().StringVar(&slugPrefix, "slug-prefix", "", "prefix for page slugs")
	cmd.Flags().StringVar(&tab, "tab", "", "navigation tab name")
	cmd.Flags().BoolVar(&fixture, "fixture", false, "use the sample ToC instead of input")
	cmd.Flags().BoolVar(&useAI, "ai", false, "repair text ToC lines with the configured model")
	cmd.Flags().BoolVar(&pages, "pages", false, "also write MDX stubs for pages that do not exist yet")
	return cmd
}
