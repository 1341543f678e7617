package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/quatton/qrender/apps/qrender/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "qrender crashed: %v\n", r)
			if os.Getenv("QRENDER_DEBUG") != "" {
				debug.PrintStack()
			}
			os.Exit(2)
		}
	}()

	cmd.Execute()
}
