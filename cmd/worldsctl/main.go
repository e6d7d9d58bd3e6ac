package main

import (
	"github.com/worldsmp/worlds-server/internal/cli"
)

func main() {
	cli.Execute()
}
