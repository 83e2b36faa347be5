package main

import (
	"os"

	"git.home.luguber.info/inful/mdbook-force-relative-links/cmd/mdbook-force-relative-links/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
