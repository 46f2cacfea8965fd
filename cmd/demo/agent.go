package main

import (
	"context"
	"fmt"
	"os"

	ai "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/agent"
	"github.com/modelmux/modelmux-go/client"
	"github.com/modelmux/modelmux-go/event"
	"github.com/modelmux/modelmux-go/schema"
)

func agentID() string {
	if id := os.Getenv("MODELMUX_AGENT_ID"); id != "" {
		return id
	}
	return "demo-agent"
}

// demoTools returns a calculator and a simulated weather tool.
func demoTools() []ai.Tool {
	calcParams := schema.Object().
		Field("a", schema.Number().Desc("First operand").Required()).
		Field("b", schema.Number().Desc("Second operand").Required()).
		MustBuild()

	weatherParams := schema.Object().
		Field("location", schema.String().Desc("The city name, e.g. San Francisco").Required()).
		MustBuild()

	return []ai.Tool{
		ai.NewFunctionTool("add", "Add two numbers", calcParams,
			func(ctx context.Context, args map[string]any) (any, error) {
				a, _ := args["a"].(float64)
				b, _ := args["b"].(float64)
				return map[string]any{"result": a + b}, nil
			},
		),
		ai.NewFunctionTool("get_weather", "Get the current weather for a location", weatherParams,
			func(ctx context.Context, args map[string]any) (any, error) {
				location, _ := args["location"].(string)
				return map[string]any{
					"location":    location,
					"temperature": 22,
					"unit":        "celsius",
					"conditions":  "Partly cloudy",
				}, nil
			},
		),
	}
}

func demoAgent(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│              Agent Demo                 │")
	fmt.Println("└─────────────────────────────────────────┘")

	a := agent.New(c)

	fmt.Println("\nUser: What's the weather in Tokyo? Also, what is 21 + 21?")

	result, err := a.Run(ctx, agentID(), []ai.Message{
		ai.NewUserMessage("What's the weather in Tokyo? Also, what is 21 + 21?"),
	}, demoTools())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("\nAssistant: %s\n", result.Response.Content())
	fmt.Printf("[Iterations: %d, tokens: %d in, %d out]\n",
		result.Iterations, result.Usage.PromptTokens, result.Usage.CompletionTokens)
}

func demoAgentEvents(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│          Agent Events Demo              │")
	fmt.Println("└─────────────────────────────────────────┘")

	a := agent.New(c)
	events := event.NewChannel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			switch ev.Type {
			case event.IterationStart:
				fmt.Printf("\n[Iteration %d]\n", ev.Iteration)

			case event.ToolCallStart:
				fmt.Printf("  -> Tool requested: %s(%s)\n",
					ev.ToolCall.Function.Name, ev.ToolCall.Function.Arguments)

			case event.ToolCallResult:
				status := "success"
				if ev.ToolResult.IsError {
					status = "error"
				}
				fmt.Printf("  <- Tool result [%s]: %s\n", status, truncate(ev.ToolResult.Content, 80))

			case event.IterationEnd:
				if ev.Response != nil {
					fmt.Printf("  [Tokens: %d in, %d out]\n",
						ev.Response.Usage.PromptTokens,
						ev.Response.Usage.CompletionTokens)
				}

			case event.RunError:
				fmt.Fprintf(os.Stderr, "\nError: %v\n", ev.Error)
			}
		}
	}()

	fmt.Println("\nUser: What is 19 + 23?")
	fmt.Println("\n--- Agent Execution ---")

	result, err := a.Run(ctx, agentID(), []ai.Message{
		ai.NewUserMessage("What is 19 + 23?"),
	}, demoTools(),
		agent.WithEvents(events),
		agent.WithMaxToolIterations(5),
	)

	close(events)
	<-done

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("\n--- Agent Complete ---\n")
	fmt.Printf("Final response: %s\n", result.Response.Content())
}
