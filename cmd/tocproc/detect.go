package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/book-toc/internal/toc"
)

func detectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Report whether text looks like a table of contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			ok := toc.IsTocText(string(b))
			a.log.Debug("Detection finished", zap.Bool("toc", ok))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
			return err
		},
	}
}
