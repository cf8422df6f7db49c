package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catFileShowSize bool

var catFileCmd = &cobra.Command{
	Use:   "cat-file <object>",
	Short: "print the contents (or size, with -s) of an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatFile,
}

func init() {
	catFileCmd.Flags().BoolVarP(&catFileShowSize, "size", "s", false, "show the object's size instead of its content")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	data, err := openRepo().CatFile(args[0])
	if err != nil {
		return err
	}
	if catFileShowSize {
		fmt.Println(len(data))
		return nil
	}
	fmt.Print(string(data))
	return nil
}
