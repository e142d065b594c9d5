package main

import "github.com/croian/genhosts/internal/cli"

func main() {
	cli.Execute()
}
