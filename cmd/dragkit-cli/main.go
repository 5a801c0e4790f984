package main

import (
	"log"

	"github.com/mithrel/dragkit/internal/cli"
)

func main() {
	log.SetFlags(0)
	if err := cli.Execute(); err != nil {
		log.Fatal("dragkit-cli: ", err)
	}
}
