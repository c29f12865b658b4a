package main

import (
	"context"
	"os"

	"github.com/cristianoliveira/volume-notify/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background(), os.Args[1:]))
}
