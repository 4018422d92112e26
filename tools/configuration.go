package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lunrsearch/mcp-server/internal/sources"
)

// ConfigurationRequiredInput defines input for the configuration_required
// tool. It takes no parameters.
type ConfigurationRequiredInput struct{}

// ConfigurationRequiredOutput describes how to configure the server.
type ConfigurationRequiredOutput struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Example string `json:"example"`
	Format  string `json:"format"`
}

// ConfigurationRequired explains how to enable the server when no search
// indexes are configured.
func ConfigurationRequired(ctx context.Context, req *mcp.CallToolRequest, input ConfigurationRequiredInput) (*mcp.CallToolResult, ConfigurationRequiredOutput, error) {
	return nil, ConfigurationRequiredOutput{
		Error:   "No search indexes configured",
		Message: "Please set the " + sources.EnvVar + " environment variable with your Lunr.js search index URL(s).",
		Example: sources.EnvVar + "=mysite=https://your-site.com/search-index.json",
		Format:  "key1=index_url1,key2=index_url2 for multiple sites",
	}, nil
}

// RegisterConfigurationTool registers the diagnostic tool exposed when the
// server starts without any configured sites.
func RegisterConfigurationTool(server *mcp.Server) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "configuration_required",
			Description: "Configuration required - no search indexes configured. Returns instructions for configuring the " + sources.EnvVar + " environment variable.",
		},
		ConfigurationRequired,
	)
}
