package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/internal/diff"
	"github.com/brickster241/jitvcs/repo"
)

var diffCmd = &cobra.Command{
	Use:   "diff [branchA..branchB]",
	Short: "diff the working tree vs committed, or two branches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	r := openRepo()

	var files []repo.FileDiff
	var err error
	if len(args) == 1 && strings.Contains(args[0], "..") {
		parts := strings.SplitN(args[0], "..", 2)
		files, err = r.DiffBranches(parts[0], parts[1])
	} else if len(args) == 1 {
		head, headErr := repo.ReadHead(r.Paths)
		if headErr != nil {
			return headErr
		}
		files, err = r.DiffBranches(head.Branch, args[0])
	} else {
		files, err = r.Diff()
	}
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, f := range files {
		fmt.Printf("diff --jit a/%s b/%s\n", f.Path, f.Path)
		for _, line := range f.Lines {
			switch line.Op {
			case diff.Insert:
				green.Println(line.String())
			case diff.Delete:
				red.Println(line.String())
			default:
				fmt.Println(line.String())
			}
		}
	}
	return nil
}
