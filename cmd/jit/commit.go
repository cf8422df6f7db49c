package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/internal/jiterr"
)

var commitMessage string

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "record staged changes",
	Args:  cobra.NoArgs,
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message (required)")
	commitCmd.MarkFlagRequired("message")
}

func runCommit(cmd *cobra.Command, args []string) error {
	result, err := openRepo().Commit(commitMessage)
	if err != nil {
		if jiterr.Is(err, jiterr.NothingToCommit) {
			fmt.Println("nothing to commit, working tree clean")
			return nil
		}
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("[%s] %s\n", shortDigest(result.Digest), commitMessage)
	return nil
}
