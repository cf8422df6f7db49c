package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brickster241/jitvcs/repo"
)

var configCmd = &cobra.Command{
	Use:   "config <key> [value]",
	Short: "get or set a [section.key] entry in .jit/config",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	r := openRepo()
	section, key, err := splitConfigKey(args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return repo.SetConfig(r.Paths, section, key, args[1])
	}

	value, err := repo.GetConfig(r.Paths, section, key)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func splitConfigKey(s string) (section, key string, err error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("config key must be of the form <section>.<key>, got %q", s)
}
