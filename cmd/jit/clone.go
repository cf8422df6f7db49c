package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <source> [dest] | clone <branch> <source> <dest> [depth]",
	Short: "copy a repository, optionally limited to one branch and depth",
	Args:  cobra.RangeArgs(1, 4),
	RunE:  runClone,
}

func runClone(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1, 2:
		source := args[0]
		dest := "."
		if len(args) == 2 {
			dest = args[1]
		}
		if _, err := repo.Clone(source, dest); err != nil {
			return err
		}
		fmt.Printf("Cloned %s into %s\n", source, dest)
		return nil

	case 3, 4:
		branch, source, dest := args[0], args[1], args[2]
		depth := 0
		if len(args) == 4 {
			d, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid depth %q: %w", args[3], err)
			}
			depth = d
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetDescription(fmt.Sprintf("cloning %s", branch)),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()

		if _, err := repo.CloneBranchProgress(source, dest, branch, depth, func() { bar.Add(1) }); err != nil {
			return err
		}
		fmt.Printf("Cloned branch %s from %s into %s\n", branch, source, dest)
		return nil
	}
	return nil
}
