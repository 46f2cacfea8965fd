package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelmux/modelmux-go/client"
)

// Category groups related demos together.
type Category string

const (
	CategoryChat    Category = "Chat"
	CategoryAgents  Category = "Agents"
	CategoryService Category = "Service"
)

// categoryOrder defines the display order of categories.
var categoryOrder = []Category{
	CategoryChat,
	CategoryAgents,
	CategoryService,
}

// Demo represents a single demo with its metadata.
type Demo struct {
	Name        string
	Description string
	Category    Category
	Run         func(ctx context.Context, c *client.Client)
}

// demos is the registry of all available demos.
var demos = []Demo{
	// Chat
	{Name: "chat", Description: "Basic chat with token counting", Category: CategoryChat, Run: demoChat},
	{Name: "stream", Description: "Streaming chat responses", Category: CategoryChat, Run: demoChatStream},
	{Name: "tools", Description: "Tool definitions on a chat request", Category: CategoryChat, Run: demoToolCalling},

	// Agents
	{Name: "agent", Description: "Agent with tool execution", Category: CategoryAgents, Run: demoAgent},
	{Name: "agent-events", Description: "Agent run with lifecycle events", Category: CategoryAgents, Run: demoAgentEvents},

	// Service
	{Name: "models", Description: "List available models", Category: CategoryService, Run: demoModels},
	{Name: "router", Description: "Inspect a router configuration", Category: CategoryService, Run: demoRouterConfig},
}

// showMenu displays the numbered menu with category headers and returns user selection.
// Returns indices of selected demos, or nil if user quits.
func showMenu() []int {
	byCategory := make(map[Category][]int)
	for i, d := range demos {
		byCategory[d.Category] = append(byCategory[d.Category], i)
	}

	fmt.Println("┌────────────────────────────────────────┐")
	fmt.Println("│             Select Demos               │")
	fmt.Println("└────────────────────────────────────────┘")
	fmt.Println()

	for _, cat := range categoryOrder {
		indices, ok := byCategory[cat]
		if !ok || len(indices) == 0 {
			continue
		}

		fmt.Printf("─── %s ───\n", cat)
		for _, i := range indices {
			d := demos[i]
			fmt.Printf("  [%2d] %-14s %s\n", i+1, d.Name, d.Description)
		}
		fmt.Println()
	}

	fmt.Println("─── Options ───")
	fmt.Println("  [a]  Run all demos")
	fmt.Println("  [q]  Quit")
	fmt.Println()

	return promptSelection(len(demos))
}

// promptSelection handles user input and returns selected demo indices.
func promptSelection(total int) []int {
	for {
		fmt.Print("Enter selection (number, range like 1-3, comma-separated, 'a' for all, 'q' to quit): ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		if input == "q" || input == "quit" {
			return nil
		}

		if input == "a" || input == "all" {
			result := make([]int, total)
			for i := range result {
				result[i] = i
			}
			return result
		}

		selected, err := parseSelection(input, total)
		if err != nil {
			fmt.Printf("Invalid selection: %v\n", err)
			continue
		}

		if len(selected) == 0 {
			fmt.Println("No demos selected. Try again.")
			continue
		}

		return selected
	}
}

// parseSelection parses user input like "1", "1-3", "1,3,5", or "1-3,7".
func parseSelection(input string, total int) ([]int, error) {
	seen := make(map[int]bool)
	var result []int

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range: %s", part)
			}

			start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid number: %s", rangeParts[0])
			}

			end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid number: %s", rangeParts[1])
			}

			if start > end {
				start, end = end, start
			}

			for i := start; i <= end; i++ {
				if i < 1 || i > total {
					return nil, fmt.Errorf("number out of range: %d (must be 1-%d)", i, total)
				}
				idx := i - 1
				if !seen[idx] {
					seen[idx] = true
					result = append(result, idx)
				}
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid number: %s", part)
			}

			if n < 1 || n > total {
				return nil, fmt.Errorf("number out of range: %d (must be 1-%d)", n, total)
			}

			idx := n - 1
			if !seen[idx] {
				seen[idx] = true
				result = append(result, idx)
			}
		}
	}

	return result, nil
}

// runDemos executes the selected demos.
func runDemos(ctx context.Context, c *client.Client, indices []int) {
	for _, i := range indices {
		demos[i].Run(ctx, c)
		fmt.Println()
	}
}
