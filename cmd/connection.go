// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/skybreeze/fanctl/internal/config"
	"github.com/skybreeze/fanctl/internal/transport"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// PasswordEnvVar supplies the bridge password non-interactively.
const PasswordEnvVar = "FANCTL_PASSWORD"

// OpenSender opens the delivery target selected by the connection flags,
// falling back to the registry's configured defaults. Returns the sender and
// a human-readable description of the target.
func OpenSender(ctx context.Context) (transport.Sender, string, error) {
	url := wsURL
	port := portName

	// Flags win; config fills in when neither flag is given.
	if url == "" && port == "" {
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
			url = registry.Preferences.DefaultBridge
			port = registry.Preferences.DefaultPort
		}
	}

	if url != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		sender, err := transport.DialBridge(ctx, url, transport.BridgeOptions{
			Username:      wsUsername,
			Password:      password,
			SkipSSLVerify: wsNoSSLVerify,
		})
		if err != nil {
			return nil, "", err
		}
		return sender, fmt.Sprintf("Bridge: %s", url), nil
	}

	if port != "" {
		sender, err := transport.OpenSerial(port, baudRate)
		if err != nil {
			return nil, "", err
		}
		return sender, fmt.Sprintf("Serial: %s @ %d baud", port, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}

// GetPassword retrieves the bridge password from the environment or prompts
// the user without echo.
func GetPassword() (string, error) {
	if pw := os.Getenv(PasswordEnvVar); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// resolveIdentity turns a CLI argument into a handset identity. A saved fan
// name from the registry wins; anything else must parse as an identity
// literal.
func resolveIdentity(arg string) (tr198a.HandsetID, error) {
	if registry, err := config.LoadRegistry(); err == nil {
		if fan := registry.GetFan(arg); fan != nil {
			id, err := fan.HandsetID()
			if err != nil {
				return 0, fmt.Errorf("fan %q has a corrupt identity %q: %w", arg, fan.ID, err)
			}
			return id, nil
		}
	}

	id, err := tr198a.ParseID(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is neither a saved fan name nor a handset identity: %w", arg, err)
	}
	return id, nil
}
