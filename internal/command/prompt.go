// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a passphrase is needed but there is no
// terminal to prompt on.
var ErrNoTerminal = errors.New("snapshot is encrypted: set --passphrase or KEYDIFF_PASSPHRASE")

// GetPassphrase prompts on stderr for a passphrase without echoing input.
func GetPassphrase() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	var password []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)
	defer signal.Stop(signalChannel)

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	defer fmt.Fprint(os.Stderr, "\r\n")

loop:
	for {
		select {
		case <-signalChannel:
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(fd, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			switch buf[0] {
			case '\n', '\r':
				break loop
			case 3: // ctrl+c in raw mode
				return "", fmt.Errorf("interrupted")
			case 127, 8:
				if len(password) > 0 {
					password = password[:len(password)-1]
					fmt.Fprint(os.Stderr, "\b \b")
				}
			default:
				password = append(password, buf[0])
				fmt.Fprint(os.Stderr, "*")
			}
		}
	}
	return string(password), nil
}
