package main

import (
	"fmt"
	"os"

	"github.com/abiosoft/lineprefix"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "print commit history from HEAD",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	r := openRepo()
	entries, err := r.Log()
	if err != nil {
		return err
	}

	yellow := color.New(color.FgYellow)
	for _, entry := range entries {
		c := entry.Commit
		out := os.Stdout
		if entry.BranchPoint != "" {
			branchPoint := entry.BranchPoint
			prefix := lineprefix.PrefixFunc(func() string {
				return fmt.Sprintf("| [%s] ", branchPoint)
			})
			fmt.Fprintf(lineprefix.New(lineprefix.Writer(out), prefix),
				"commit %s\nAuthor: %s\nDate:   %s (%s)\n\n    %s\n",
				c.Checksum, c.Author,
				c.Timestamp.Format("Mon Jan 2 15:04:05 2006"), humanize.Time(c.Timestamp), c.Message)
			continue
		}

		yellow.Fprintf(out, "commit %s\n", c.Checksum)
		fmt.Fprintf(out, "Author: %s\nDate:   %s (%s)\n\n    %s\n\n",
			c.Author, c.Timestamp.Format("Mon Jan 2 15:04:05 2006"), humanize.Time(c.Timestamp), c.Message)
	}
	return nil
}
