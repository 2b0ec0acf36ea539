package main

import (
	"os"

	"github.com/layerx402/layerx402/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
