package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var editTitle, editContent string

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace the title and content of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.store.Update(cmd.Context(), id, editTitle, editContent); err != nil {
			return fmt.Errorf("note %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %d\n", id)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "m", "", "New content")
	rootCmd.AddCommand(editCmd)
}
