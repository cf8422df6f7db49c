// Command jit is the CLI front-end over the repository engine in repo/.
package main

import (
	"fmt"
	"os"
)

func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitError("%v", err)
	}
}
