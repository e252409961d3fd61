package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/utils"
)

func newFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "File helpers for batch and output files",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ensure [dir]",
			Short: "Create a directory and its parents if absent (default: files.output_dir)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := a.cfg.Files.OutputDir
				if len(args) == 1 {
					dir = args[0]
				}
				return utils.EnsurePath(a.fs, dir)
			},
		},
		&cobra.Command{
			Use:   "list [dir]",
			Short: "List the files directly inside a directory (default: files.output_dir)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := a.cfg.Files.OutputDir
				if len(args) == 1 {
					dir = args[0]
				}
				names, err := utils.FindAllFiles(a.fs, dir)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "append <path> <content>",
			Short: "Append content to a file, creating it if needed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return utils.WriteFile(a.fs, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "cat <path>",
			Short: "Print a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := utils.ReadFile(a.fs, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			},
		},
	)

	return cmd
}
