package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/internal/jiterr"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "merge a branch into the current one",
	Args:  cobra.ExactArgs(1),
	RunE:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	result, err := openRepo().Merge(args[0])
	if err != nil {
		if jiterr.Is(err, jiterr.NothingToMerge) {
			fmt.Println("Already up to date.")
			return nil
		}
		return err
	}

	if len(result.Conflicts) > 0 {
		color.New(color.FgRed).Println("Automatic merge failed. Fix conflicts and then commit the result.")
		for _, path := range result.Conflicts {
			fmt.Printf("  %s\n", path)
		}
		os.Exit(1)
	}

	color.New(color.FgGreen).Printf("Merge made at %s\n", shortDigest(result.Digest))
	return nil
}
