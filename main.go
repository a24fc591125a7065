// main is the entrypoint for the streetrisk CLI.
package main

import (
	"github.com/huangsam/streetrisk/cmd"
	"github.com/huangsam/streetrisk/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("streetrisk error", err)
	}
}
