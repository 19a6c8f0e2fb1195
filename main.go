package main

import (
	"embed"
	"os"

	"github.com/haveachin/q3tool/cmd"
)

//go:embed configs
var files embed.FS

// Set by the linker.
var version = "dev"

func main() {
	if err := cmd.Execute(files, version); err != nil {
		os.Exit(1)
	}
}
