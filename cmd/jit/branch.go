package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "list all branches, marking the current one",
	Args:  cobra.NoArgs,
	RunE:  runBranch,
}

func runBranch(cmd *cobra.Command, args []string) error {
	r := openRepo()

	branches, current, err := r.ListBranches()
	if err != nil {
		return err
	}

	head, err := repo.ReadHead(r.Paths)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	for _, name := range branches {
		if head.Kind == repo.HeadBranch && name == current {
			green.Printf("* %s\n", name)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
