package main

import (
	"os"

	"github.com/GriffinCanCode/incgamma/cmd/gammactl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
