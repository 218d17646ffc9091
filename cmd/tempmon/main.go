package main

import "github.com/tempmon/tempmon/pkg/cli"

func main() {
	cli.Execute()
}
