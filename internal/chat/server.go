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
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/styles"
)

// =============================================================================
// SERVER
// =============================================================================

// Server hosts a chat room: it accepts TCP peers, reads their frames, and
// broadcasts every message to all connected peers and the host console.
type Server struct {
	hostName   string
	maxFrame   int
	maxNameLen int
	log        *logging.Logger
	out        io.Writer
	input      io.Reader
	ln         net.Listener
	mu         sync.Mutex
	clients    map[net.Conn]string
	closed     bool
}

// NewServer creates a server; hostName is the display name used for console
// messages typed by the host.
func NewServer(hostName string, maxFrame, maxNameLen int, log *logging.Logger, out io.Writer) *Server {
	return &Server{
		hostName:   hostName,
		maxFrame:   maxFrame,
		maxNameLen: maxNameLen,
		log:        log,
		out:        out,
		input:      os.Stdin,
		clients:    make(map[net.Conn]string),
	}
}

// Start binds the listener and begins accepting peers in the background.
func (s *Server) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.log.Info("chat", "hosting chat server", map[string]string{"addr": ln.Addr().String()})
	go s.acceptLoop(ln)
	return nil
}

// Run hosts a chat session on the port until the host console closes or an
// interrupt arrives. It blocks for the whole session.
func (s *Server) Run(port int) error {
	if err := s.Start(port); err != nil {
		return err
	}
	defer s.Shutdown()

	fmt.Fprintln(s.out, styles.Warning.Render(fmt.Sprintf("[Hosting] Chat server on port %d", port)))

	// Host console: every non-empty line is broadcast under the host's name.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.input)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if msg := strings.TrimSpace(line); msg != "" {
				s.Broadcast(Frame{Sender: s.hostName, Message: msg})
			}
		case <-interrupt:
			fmt.Fprintln(s.out)
			return nil
		}
	}
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

// handleConn reads the peer's name line, registers it, then relays its
// messages until disconnect.
func (s *Server) handleConn(conn net.Conn) {
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 1024), s.maxFrame)

	name := ""
	if sc.Scan() {
		name = strings.TrimSpace(sc.Text())
	}
	if name == "" {
		name = "Guest-" + uuid.NewString()[:8]
	}
	if len(name) > s.maxNameLen {
		name = name[:s.maxNameLen]
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = name
	s.mu.Unlock()

	s.Broadcast(Frame{Sender: SystemSender, Message: name + " joined the chat!"})
	s.log.Info("chat", "peer joined", map[string]string{"name": name})

	for sc.Scan() {
		msg := strings.TrimSpace(sc.Text())
		if msg == "" {
			continue
		}
		s.Broadcast(Frame{Sender: name, Message: msg})
	}

	s.mu.Lock()
	_, present := s.clients[conn]
	delete(s.clients, conn)
	closed := s.closed
	s.mu.Unlock()
	conn.Close()

	if present && !closed {
		s.Broadcast(Frame{Sender: SystemSender, Message: name + " left."})
		s.log.Info("chat", "peer left", map[string]string{"name": name})
	}
}

// Broadcast sends the frame to every connected peer and echoes it on the
// host console. Peers whose connection fails are dropped.
func (s *Server) Broadcast(frame Frame) {
	payload, err := frame.Encode()
	if err != nil {
		return
	}

	s.mu.Lock()
	for conn := range s.clients {
		if _, err := conn.Write(payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
	s.mu.Unlock()

	fmt.Fprintln(s.out, frame.Render())
}

// Addr returns the listener address, once Run has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown notifies peers, closes every connection, and stops listening.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ln := s.ln
	conns := make([]net.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clients = make(map[net.Conn]string)
	s.mu.Unlock()

	payload, err := Frame{Sender: SystemSender, Message: "[Server] Shutting down."}.Encode()
	for _, conn := range conns {
		if err == nil {
			conn.Write(payload)
		}
		conn.Close()
	}
	if ln != nil {
		ln.Close()
	}

	fmt.Fprintln(s.out, "[Server] Shutting down.")
	s.log.Info("chat", "chat server stopped", nil)
}
