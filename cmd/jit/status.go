package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show the working tree status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	r := openRepo()

	head, err := repo.ReadHead(r.Paths)
	if err != nil {
		return err
	}
	if head.Kind == repo.HeadBranch {
		fmt.Printf("On branch %s\n", head.Branch)
	} else {
		fmt.Printf("HEAD detached at %s\n", shortDigest(head.Digest))
	}

	st, err := r.Status()
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	printSet := func(label string, paths []string, c *color.Color) {
		if len(paths) == 0 {
			return
		}
		fmt.Println(label)
		for _, p := range paths {
			c.Printf("  %s\n", p)
		}
	}

	printSet("Staged:", st.Staged, green)
	printSet("Modified:", st.Modified, yellow)
	printSet("New:", st.New, yellow)
	printSet("Deleted:", st.Deleted, red)

	if !st.IsDirty() {
		fmt.Println("nothing to commit, working tree clean")
	}
	return nil
}
