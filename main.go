// Package main is the entry point for the vidq application.
package main

import (
	"github.com/samber/lo"
	"github.com/vidq-cli/vidq/cmd"
	"github.com/vidq-cli/vidq/config"
	"github.com/vidq-cli/vidq/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
