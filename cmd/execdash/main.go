package main

import "github.com/emiliopalmerini/execdash/internal/cli"

func main() {
	cli.Execute()
}
