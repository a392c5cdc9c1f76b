package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/render"
	"github.com/thywilljoshua/book-toc/internal/toc"
)

func parseCmd(a *app) *cobra.Command {
	var format string
	var useAI bool

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a plain text table of contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text := string(b)

			if useAI || a.cfg.AI.Provider != "off" {
				r, err := a.repairer(cmd.Context(), useAI)
				if err != nil {
					return err
				}
				lines, err := r.RepairToC(cmd.Context(), strings.Split(text, "\n"))
				if err != nil {
					return err
				}
				text = strings.Join(lines, "\n")
			}

			p := toc.ProcessText(text)
			a.log.Info("Parsed ToC",
				zap.Int("entries", len(p.FlatEntries)),
				zap.Int("roots", len(p.Entries)),
				zap.Int("depth", p.Depth()))
			return writeToc(cmd.OutOrStdout(), p, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|outline|flat")
	cmd.Flags().BoolVar(&useAI, "ai", false, "repair lines with the configured model before parsing")
	return cmd
}

func writeToc(w io.Writer, p *toc.Processed, format string) error {
	switch format {
	case "json":
		return render.JSON(w, p)
	case "outline":
		return render.Outline(w, p.Entries)
	case "flat":
		return render.Flat(w, p.FlatEntries)
	}
	return fmt.Errorf("unknown format %q (want json, outline or flat)", format)
}
