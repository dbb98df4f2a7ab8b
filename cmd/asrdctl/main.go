package main

import (
	"os"

	"asrd/internal/devctl"
)

func main() {
	os.Exit(devctl.Main())
}
