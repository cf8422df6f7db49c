package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashObjectWrite bool

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <file>",
	Short: "compute (and optionally store) the digest of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashObject,
}

func init() {
	hashObjectCmd.Flags().BoolVarP(&hashObjectWrite, "write", "w", false, "write the object into the object store")
}

func runHashObject(cmd *cobra.Command, args []string) error {
	digest, err := openRepo().HashObject(args[0], hashObjectWrite)
	if err != nil {
		return err
	}
	fmt.Println(digest)
	return nil
}
