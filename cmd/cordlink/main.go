package main

import (
	"os"

	"cordlink/cmd/cordlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
