// Package mcp exposes tools from MCP (Model Context Protocol) servers
// as agent tools.
//
// A [Source] connects to an MCP server, lists its tools, and wraps each
// one as a [modelmux.Tool] whose callback proxies execution to the
// server. The resulting tools plug directly into the agent run loop:
//
//	source, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	result, err := agent.New(c).Run(ctx, "my-agent", messages, source.Tools())
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	mux "github.com/modelmux/modelmux-go"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Source provides agent tools backed by a remote MCP server.
// It is safe for concurrent use. The tool list is cached locally and can
// be refreshed with [Source.Refresh].
type Source struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]mux.Tool
}

// Connect creates a Source connected to an MCP server via stdio.
// The command is the path to the MCP server executable, and args are
// passed to it.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Source, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return newSource(ctx, c)
}

// ConnectSSE creates a Source connected to an MCP server via SSE.
func ConnectSSE(ctx context.Context, baseURL string) (*Source, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}
	return newSource(ctx, c)
}

// NewSource creates a Source from an existing MCP client.
func NewSource(ctx context.Context, c *client.Client) (*Source, error) {
	return newSource(ctx, c)
}

func newSource(ctx context.Context, c *client.Client) (*Source, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "modelmux-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	s := &Source{
		client: c,
		tools:  make(map[string]mux.Tool),
	}

	if err := s.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return s, nil
}

// Close closes the connection to the MCP server.
func (s *Source) Close() error {
	return s.client.Close()
}

// Refresh fetches the current list of tools from the MCP server.
func (s *Source) Refresh(ctx context.Context) error {
	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = make(map[string]mux.Tool, len(result.Tools))
	for _, t := range result.Tools {
		s.tools[t.Name] = s.wrapTool(t)
	}
	return nil
}

// Tools returns all tools available from the MCP server, each carrying
// a callback that proxies execution to the server.
func (s *Source) Tools() []mux.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]mux.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// Tool retrieves a tool by name.
func (s *Source) Tool(name string) (mux.Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tools[name]
	return t, ok
}

// Names returns the names of all available tools.
func (s *Source) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	return names
}

// wrapTool converts an MCP tool into an agent tool whose callback calls
// the remote server.
func (s *Source) wrapTool(t mcp.Tool) mux.Tool {
	var params json.RawMessage
	if len(t.RawInputSchema) > 0 {
		params = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		params = data
	}

	return mux.NewFunctionTool(t.Name, t.Description, params, s.callback(t.Name))
}

// callback builds a callback proxying one named tool to the server.
func (s *Source) callback(name string) mux.Callback {
	return func(ctx context.Context, args map[string]any) (any, error) {
		result, err := s.client.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      name,
				Arguments: args,
			},
		})
		if err != nil {
			return nil, err
		}

		text := flattenContent(result)
		if result.IsError {
			return nil, errors.New(text)
		}
		return text, nil
	}
}

// flattenContent extracts the text content of a call result,
// JSON-encoding any non-text parts.
func flattenContent(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}

	return strings.Join(parts, "\n")
}
