// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

// banner is the startup ASCII art.
const banner = `                    _ _
  ___ _ __ ___   __| | |_   _
 / __| '_ ` + "`" + ` _ \ / _` + "`" + ` | | | | |
| (__| | | | | | (_| | | |_| |
 \___|_| |_| |_|\__,_|_|\__, |
                        |___/`

// Welcome returns the styled startup banner plus the usage hint.
func Welcome() string {
	return Banner.Render(banner) + "\n\n" +
		"Welcome to Cmdly! Type 'help' for a list of commands or 'exit' to quit.\n"
}
