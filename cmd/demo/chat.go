package main

import (
	"context"
	"fmt"
	"os"

	ai "github.com/modelmux/modelmux-go"
	"github.com/modelmux/modelmux-go/client"
	"github.com/modelmux/modelmux-go/schema"
)

func demoChat(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│              Chat Demo                  │")
	fmt.Println("└─────────────────────────────────────────┘")

	messages := []ai.Message{
		ai.NewUserMessage("What is the capital of France? Reply in one sentence."),
	}

	fmt.Printf("\nUser: %s\n", messages[0].Content)
	fmt.Print("\nAssistant: ")

	resp, err := c.Chat(ctx, messages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println(resp.Content())
	fmt.Printf("[Tokens: %d in, %d out]\n", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
}

func demoChatStream(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│          Chat Stream Demo               │")
	fmt.Println("└─────────────────────────────────────────┘")

	messages := []ai.Message{
		ai.NewUserMessage("Say hello in 3 different languages, one per line."),
	}

	stream, err := c.ChatStream(ctx, messages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Print("\nAssistant:\n")
	for ev := range stream {
		if ev.Err != nil {
			fmt.Fprintf(os.Stderr, "Stream error: %v\n", ev.Err)
			return
		}
		if ev.Done {
			if ev.Response != nil {
				fmt.Printf("\n[Tokens: %d in, %d out]\n",
					ev.Response.Usage.PromptTokens,
					ev.Response.Usage.CompletionTokens)
			}
			return
		}
		fmt.Print(ev.Delta)
	}
}

func demoToolCalling(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│          Tool Calling Demo              │")
	fmt.Println("└─────────────────────────────────────────┘")

	weatherParams := schema.Object().
		Field("location", schema.String().Desc("The city name, e.g. San Francisco").Required()).
		Field("unit", schema.String().Enum("celsius", "fahrenheit")).
		MustBuild()

	tools := []ai.Tool{{
		Type: ai.ToolTypeFunction,
		Function: ai.FunctionDef{
			Name:        "get_weather",
			Description: "Get the current weather for a location",
			Parameters:  weatherParams,
		},
	}}

	fmt.Println("\nUser: What's the weather in Tokyo?")

	resp, err := c.Chat(ctx, []ai.Message{
		ai.NewUserMessage("What's the weather in Tokyo?"),
	}, ai.WithTools(tools))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if calls := resp.ToolCalls(); len(calls) > 0 {
		fmt.Println("\nModel requested tools:")
		for _, call := range calls {
			fmt.Printf("  -> %s(%s)\n", call.Function.Name, call.Function.Arguments)
		}
		return
	}

	fmt.Printf("\nAssistant: %s\n", resp.Content())
}
