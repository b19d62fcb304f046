package main

import "github.com/dice-group/tentris-license-aggregator/internal/cli"

func main() {
	cli.Execute()
}
