package main

import (
	"os"

	"github.com/simoneromano96/deepinfra-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args))
}
