package main

import "github.com/C0deSamurai/verdant-ecstasy/internal/cli"

func main() {
	cli.Execute()
}
