package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"solex/pkg/query"
	"solex/pkg/tui"
)

// Version should be set during build
var Version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("solex version %s\n", Version)
		os.Exit(0)
	}

	// The TUI owns the terminal, so RPC logging has nowhere to go.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := query.NewRunner(&query.RPCDataSource{Logger: logger})

	tui.Start(runner, Version)
}
