// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/internal/bridge"
	"github.com/skybreeze/fanctl/internal/transport"
)

var (
	serveListen    string
	serveUsername  string
	serveAdvertise string
	serveNoMDNS    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the RF bridge daemon",
	Long: `Expose a serial-attached RF transmitter to the network.

Runs a WebSocket server that accepts transmit requests on /transmit,
verifies each container and forwards it to the transmitter on --port. The
bridge advertises itself over mDNS so 'fanctl discover' finds it.

With --auth-username, clients must present HTTP Basic credentials; the
password is read from FANCTL_PASSWORD or prompted at startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8433", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&serveUsername, "auth-username", "", "Require HTTP Basic auth with this username")
	serveCmd.Flags().StringVar(&serveAdvertise, "advertise", "", "mDNS instance name (default derived from hostname)")
	serveCmd.Flags().BoolVar(&serveNoMDNS, "no-mdns", false, "Do not advertise over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return fmt.Errorf("--port is required (the serial device the transmitter is attached to)")
	}

	password := ""
	if serveUsername != "" {
		var err error
		password, err = GetPassword()
		if err != nil {
			return err
		}
	}

	sender, err := transport.OpenSerial(portName, baudRate)
	if err != nil {
		return err
	}

	server := bridge.New(bridge.Config{
		Listen:        serveListen,
		Username:      serveUsername,
		Password:      password,
		AdvertiseName: serveAdvertise,
		NoMDNS:        serveNoMDNS,
	}, sender)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case <-sigChan:
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}
