//go:build ignore
// +build ignore

package main

import (
	"log"

	dragkit "github.com/mithrel/dragkit/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := dragkit.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "DRAGKIT-CLI",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}
