package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/balloons/internal/config"
	"github.com/tomz197/balloons/internal/loop"
)

func main() {
	// Warnings only: anything louder would scribble over the game screen.
	logger := config.NewLogger(os.Stderr, log.WarnLevel)

	g, err := config.LoadGame()
	if err != nil {
		logger.Error("failed to load game", "err", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, loop.Options{
		Catalog:  g.Catalog,
		Settings: g.Settings,
		Logger:   logger,
		Username: config.GetEnv("USER", "player"),
	})
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Error("game error", "err", runErr)
		os.Exit(1)
	}
}
