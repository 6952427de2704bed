package main

import (
	"os"

	"github.com/shruggr/bsv-ord-tx/lib"
)

func main() {
	if err := newRootCommand(&app{}).Execute(); err != nil {
		lib.Log.Error(err)
		os.Exit(1)
	}
}
