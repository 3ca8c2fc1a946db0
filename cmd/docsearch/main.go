package main

import "github.com/kyle-williams-1/docsearch/internal/cli"

func main() {
	cli.Execute()
}
