package main

import (
	"os"

	"github.com/zenifieduk/techhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
