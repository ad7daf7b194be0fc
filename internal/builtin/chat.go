// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/cmdly/internal/chat"
	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
)

// chatCmd hosts or joins a LAN chat session.
type chatCmd struct {
	deps Deps
}

func (c *chatCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "chat",
		Author:      "CJ",
		DateCreated: "2025-06-17",
		Description: "Client-server chat command",
		Help: "Usage:\n" +
			"  chat host <port> --name <your_name>\n" +
			"  chat join <ip:port> --name <your_name>",
	}
}

func (c *chatCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	if len(args) < 2 {
		fmt.Fprintln(c.deps.Out, c.Meta().Help)
		return 1, nil
	}

	mode, target := args[0], args[1]
	name := "Anonymous"
	if n, ok := named.Str("name"); ok && n != "" {
		name = n
	}

	switch mode {
	case "host":
		port, err := strconv.Atoi(target)
		if err != nil {
			fmt.Fprintln(c.deps.Out, "Invalid port number.")
			c.deps.Log.Error("chat", "invalid port number", map[string]string{"port": target})
			return 1, nil
		}
		srv := chat.NewServer(name, c.deps.Config.Chat.MaxMessageBytes,
			c.deps.Config.Chat.MaxNameLen, c.deps.Log, c.deps.Out)
		if err := srv.Run(port); err != nil {
			return 1, err
		}
	case "join":
		host, portStr, ok := strings.Cut(target, ":")
		if !ok || host == "" {
			fmt.Fprintln(c.deps.Out, "Invalid address. Use ip:port.")
			return 1, nil
		}
		if _, err := strconv.Atoi(portStr); err != nil {
			fmt.Fprintln(c.deps.Out, "Invalid port number.")
			c.deps.Log.Error("chat", "invalid port number", map[string]string{"port": portStr})
			return 1, nil
		}
		cli := chat.NewClient(name, c.deps.Config.Chat.MaxMessageBytes, c.deps.Log, c.deps.Out)
		if err := cli.Run(target); err != nil {
			return 1, err
		}
	default:
		fmt.Fprintln(c.deps.Out, "Invalid mode. Use 'host' or 'join'.")
		c.deps.Log.Error("chat", "invalid mode", map[string]string{"mode": mode})
		return 1, nil
	}
	return 0, nil
}
