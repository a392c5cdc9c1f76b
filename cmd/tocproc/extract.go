package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/extract"
	"github.com/thywilljoshua/book-toc/internal/toc"
)

func extractCmd(a *app) *cobra.Command {
	var format string
	var fixture bool
	var useAI bool

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract the table of contents from a PDF, EPUB or text file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fixture && len(args) == 0 {
				return errors.New("extract needs a file argument unless --fixture is set")
			}
			p, err := a.extract(cmd, args, fixture, useAI)
			if err != nil {
				return err
			}
			return writeToc(cmd.OutOrStdout(), p, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|outline|flat")
	cmd.Flags().BoolVar(&fixture, "fixture", false, "ignore the input and return the sample ToC")
	cmd.Flags().BoolVar(&useAI, "ai", false, "repair printed ToC lines with the configured model")
	return cmd
}

func (a *app) extract(cmd *cobra.Command, args []string, fixture, useAI bool) (*toc.Processed, error) {
	var x extract.Extractor = extract.Fixture{}
	var content []byte

	if !fixture {
		b, err := readInput(cmd, args)
		if err != nil {
			return nil, err
		}
		r, err := a.repairer(cmd.Context(), useAI)
		if err != nil {
			return nil, err
		}
		content = b
		x = extract.NewAuto(a.extractOptions(r))
		a.log.Debug("Extracting", zap.Stringer("format", extract.Detect(b)), zap.Int("size", len(b)))
	}

	p, err := x.Extract(cmd.Context(), content)
	if err != nil {
		return nil, err
	}
	a.log.Info("Extracted ToC",
		zap.Int("entries", len(p.FlatEntries)),
		zap.Int("depth", p.Depth()))
	return p, nil
}
