package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addTitle, addContent string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.store.Create(cmd.Context(), addTitle, addContent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note created: %d\n", n.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "content", "m", "", "Note content")
	rootCmd.AddCommand(addCmd)
}
