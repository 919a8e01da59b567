// Package main is the entry point of the tripmap CLI.
package main

import (
	"github.com/pynyc/tripmap/cmd"
	"github.com/pynyc/tripmap/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("tripmap", err)
	}
}
