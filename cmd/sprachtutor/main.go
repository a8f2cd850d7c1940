package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sprachtutor: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	rootCmd := NewRootCmd(version, a)
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
