package main

import (
	"os"

	"github.com/fatih/color"

	"tierfs/cli"
)

func main() {
	if err := cli.Process(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}
