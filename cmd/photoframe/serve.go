package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dixieflatline76/photoframe/pkg/api"
	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fresh frames to displays over HTTP and WebSocket",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address, overriding the settings file")
}

func runServe(cmd *cobra.Command, args []string) error {
	acquired, err := acquireLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another instance is already serving")
	}
	defer releaseLock()

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}
	if _, err := requireAlbumURL(); err != nil {
		return err
	}

	server := api.NewServer(addr, newProvider(), cfg.Settings(), cfg.Device)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	}
}
