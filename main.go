package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lunrsearch/mcp-server/internal/loader"
	"github.com/lunrsearch/mcp-server/internal/page"
	"github.com/lunrsearch/mcp-server/internal/sources"
	"github.com/lunrsearch/mcp-server/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	version    = "0.3.0"
	serverName = "lunr-mcp-server"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// Set up logging to stderr (MCP uses stdout for protocol)
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting...", serverName, version)

	sites, err := sources.ParseSites(os.Getenv(sources.EnvVar))
	if err != nil {
		log.Fatalf("Invalid %s: %v", sources.EnvVar, err)
	}

	// Create MCP server
	server := createMCPServer()

	registerTools(server, sites)

	log.Printf("✓ Server ready and waiting for connections")

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)

	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}

// registerTools registers search_<key> and get_<key>_page for every
// configured site. With no sites configured the server still starts and
// exposes a single diagnostic tool that explains the required setup.
func registerTools(server *mcp.Server, sites []sources.Source) {
	if len(sites) == 0 {
		log.Printf("Warning: %s is not set, no documentation sites configured", sources.EnvVar)
		tools.RegisterConfigurationTool(server)
		log.Printf("✓ All tools registered: 1 tool (configuration diagnostic)")
		return
	}

	ld := loader.New(nil)
	resolver := page.NewResolver(nil)
	tools.RegisterDocSearchTools(server, sites, ld, resolver)

	log.Printf("✓ All tools registered: %d tools (%d sites, search + get page each)", 2*len(sites), len(sites))
}
