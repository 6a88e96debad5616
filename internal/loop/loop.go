// Package loop runs a local single-player game: an in-process server and
// one client on the given terminal streams.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/loop/client"
	"github.com/tomz197/balloons/internal/loop/server"
	"github.com/tomz197/balloons/internal/vocab"
)

// Options configures a local game.
type Options struct {
	Catalog      *vocab.Catalog
	Settings     game.Settings
	Logger       *log.Logger
	Username     string
	TermSizeFunc draw.TermSizeFunc
	NoColor      bool
}

// Run plays until the player quits or the input closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(server.Options{
		Catalog:  opts.Catalog,
		Settings: opts.Settings,
		Logger:   opts.Logger,
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Run(ctx)
	}()

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		NoColor:      opts.NoColor,
	})
	err := c.Run()

	cancel()
	<-done
	return err
}
