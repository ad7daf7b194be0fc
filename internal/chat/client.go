// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"

	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/styles"
)

// =============================================================================
// CLIENT
// =============================================================================

// Client joins a hosted chat room and relays between the console and the
// server until either side disconnects.
type Client struct {
	name     string
	maxFrame int
	log      *logging.Logger
	out      io.Writer
	input    io.Reader
}

// NewClient creates a chat client joining under the given display name.
func NewClient(name string, maxFrame int, log *logging.Logger, out io.Writer) *Client {
	return &Client{
		name:     name,
		maxFrame: maxFrame,
		log:      log,
		out:      out,
		input:    os.Stdin,
	}
}

// Run connects to addr (host:port), sends the display name, and blocks
// relaying messages until the server goes away, the console closes, or an
// interrupt arrives.
func (c *Client) Run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, c.name); err != nil {
		return fmt.Errorf("failed to send name: %w", err)
	}

	fmt.Fprintln(c.out, styles.Warning.Render("[Joined] "+addr))
	c.log.Info("chat", "joined chat server", map[string]string{"addr": addr, "name": c.name})

	// Server frames.
	frames := make(chan Frame)
	go func() {
		defer close(frames)
		sc := bufio.NewScanner(conn)
		sc.Buffer(make([]byte, 0, 1024), c.maxFrame)
		for sc.Scan() {
			frame, err := DecodeFrame(sc.Bytes())
			if err != nil {
				continue
			}
			frames <- frame
		}
	}()

	// Console lines.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.input)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				fmt.Fprintln(c.out, "[Client] Disconnected.")
				c.log.Info("chat", "server closed connection", nil)
				return nil
			}
			fmt.Fprintln(c.out, frame.Render())
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out, "[Client] Disconnected.")
				return nil
			}
			if msg := strings.TrimSpace(line); msg != "" {
				if _, err := fmt.Fprintln(conn, msg); err != nil {
					fmt.Fprintln(c.out, "[Client] Disconnected.")
					return nil
				}
			}
		case <-interrupt:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "[Client] Disconnected.")
			c.log.Info("chat", "left chat server", nil)
			return nil
		}
	}
}
