package main

import (
	"github.com/consensys/go-tracetables/pkg/cmd"
)

func main() {
	cmd.Execute()
}
