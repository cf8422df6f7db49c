package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var rootCmd = &cobra.Command{
	Use:           "jit",
	Short:         "a minimal distributed version-control system",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(catFileCmd)
	rootCmd.AddCommand(hashObjectCmd)
	rootCmd.AddCommand(configCmd)
}

// openRepo opens the repository rooted at the current working
// directory. jit never searches parent directories for .jit — the
// repository root is always the process's cwd.
func openRepo() *repo.Repo {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}
	r := repo.Open(cwd)
	if _, statErr := os.Stat(r.Paths.JitDir()); statErr != nil {
		exitError("not a jit repository: no .jit in the current directory")
	}
	return r
}

// shortDigest returns the first 8 hex characters of a digest, for
// terse CLI output.
func shortDigest(digest string) string {
	if len(digest) > 8 {
		return digest[:8]
	}
	return digest
}
