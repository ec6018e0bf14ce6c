package main

import (
	"os"

	"github.com/regulint/trueup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
