package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupted while blocked, e.g. deploy --watch. Exit like a
			// signal-terminated process without repeating the error.
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "stagehand:", err)
		os.Exit(1)
	}
}
