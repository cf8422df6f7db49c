package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkoutCreateBranch bool

var checkoutCmd = &cobra.Command{
	Use:   "checkout <target>",
	Short: "switch branches, or create one with -b",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckout,
}

func init() {
	checkoutCmd.Flags().BoolVarP(&checkoutCreateBranch, "branch", "b", false, "create a new branch at HEAD and switch to it")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	r := openRepo()
	target := args[0]

	if checkoutCreateBranch {
		if err := r.Branch(target); err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("Switched to a new branch '%s'\n", target)
		return nil
	}

	if err := r.Checkout(target); err != nil {
		return err
	}
	fmt.Printf("Switched to '%s'\n", target)
	return nil
}
