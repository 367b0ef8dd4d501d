package main

import "docs-support/internal/cli"

func main() {
	cli.Execute()
}
