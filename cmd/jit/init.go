package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "initialise an empty jit repository",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
		if err := os.MkdirAll(root, repo.DirPerm); err != nil {
			return err
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	if _, err := repo.Init(abs); err != nil {
		return err
	}
	fmt.Printf("Initialized empty jit repository in %s\n", abs)
	return nil
}
