// skylight-mcp: MCP server for the Skylight family frame.
//
// Exposes the Skylight calendar, chore chart, lists, task box, rewards,
// meal planner, and photo frame as MCP tools over stdio, so any MCP
// client can manage the household.
//
// Usage:
//
//	skylight-mcp serve    # Start MCP server (stdio transport)
//	skylight-mcp update   # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	skyserver "github.com/mwhite/skylight-mcp/internal/server"
	"github.com/mwhite/skylight-mcp/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("skylight-mcp v%s\n", skyserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, err := skyserver.New()
	if err != nil {
		return err
	}

	// Background version check prints to stderr so it doesn't interfere
	// with MCP's stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. Best-effort: network failures
// are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(skyserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n"+
				"  Run: skylight-mcp update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "Checking for updates...\n")

	result := updater.CheckVersion(skyserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s -> v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "Downloading...\n")

	if err := updater.SelfUpdate(skyserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nYou can download manually from:\n%s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "Restart skylight-mcp to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `skylight-mcp v%s - MCP server for the Skylight family frame

Usage:
  skylight-mcp serve    Start the MCP server (stdio transport)
  skylight-mcp update   Update to the latest version

Environment:
  SKYLIGHT_FRAME_ID     Frame ID (required)
  SKYLIGHT_EMAIL        Account email    (login mode)
  SKYLIGHT_PASSWORD     Account password (login mode)
  SKYLIGHT_TOKEN        Pre-issued token (token mode, wins over login)
  SKYLIGHT_AUTH_SCHEME  "bearer" (default) or "basic", token mode only
  SKYLIGHT_TIMEZONE     IANA zone for date parsing (default America/New_York)

  Variables may also be placed in a .env file in the working directory.

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "skylight": {
        "command": "skylight-mcp",
        "args": ["serve"],
        "env": {
          "SKYLIGHT_FRAME_ID": "12345",
          "SKYLIGHT_EMAIL": "you@example.com",
          "SKYLIGHT_PASSWORD": "..."
        }
      }
    }
  }
`, skyserver.Version)
}
