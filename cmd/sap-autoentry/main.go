// Package main is the entry point for the sap-autoentry CLI.
package main

import (
	"os"

	"github.com/JesusMMA96/sap-autoentry/cmd/sap-autoentry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
