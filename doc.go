// Package modelmux provides a Go client for the ModelMux model-routing
// service, exposing an OpenAI-compatible chat/completions interface plus
// an agent abstraction that can invoke caller-supplied tool callbacks.
//
// # Basic Usage
//
// Send a simple chat message through a router:
//
//	c, err := client.New(client.Config{
//	    APIKey:   os.Getenv("MODELMUX_API_KEY"),
//	    RouterID: "my-router",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	messages := []modelmux.Message{
//	    {Role: modelmux.RoleUser, Content: "What is the capital of France?"},
//	}
//
//	resp, err := c.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content())
//
// # Streaming Responses
//
// For real-time output, use ChatStream:
//
//	stream, err := c.ChatStream(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for ev := range stream {
//	    if ev.Err != nil {
//	        log.Fatal(ev.Err)
//	    }
//	    fmt.Print(ev.Delta)
//	}
//
// # Tools and Agents
//
// Define tools the remote agent can invoke, optionally backed by local
// callbacks:
//
//	tools := []modelmux.Tool{
//	    modelmux.NewFunctionTool("get_weather", "Get current weather",
//	        schema.Object().
//	            Field("location", schema.String().Desc("City name").Required()).
//	            MustBuild(),
//	        func(ctx context.Context, args map[string]any) (any, error) {
//	            return getWeather(args["location"].(string))
//	        },
//	    ),
//	}
//
//	result, err := agent.New(c).Run(ctx, "my-agent", messages, tools)
//
// The agent loop repeatedly calls the remote agent, executes any
// requested tool callbacks locally, appends the results to the
// conversation, and resubmits until the agent produces a final answer
// or the iteration budget is exhausted.
//
// # Higher-Level Packages
//
//   - [github.com/modelmux/modelmux-go/client]: the HTTP client entry point
//   - [github.com/modelmux/modelmux-go/agent]: the agent tool-execution loop
//   - [github.com/modelmux/modelmux-go/tool]: callback registry and resolver
//   - [github.com/modelmux/modelmux-go/schema]: tool parameter schema builders
//   - [github.com/modelmux/modelmux-go/retry]: retry with exponential backoff
//   - [github.com/modelmux/modelmux-go/mcp]: MCP servers as tool sources
package modelmux
