package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelmux/modelmux-go/client"
)

func demoModels(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│              Models Demo                │")
	fmt.Println("└─────────────────────────────────────────┘")

	models, err := c.GetModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("\n%d models available:\n", len(models))
	for _, m := range models {
		if m.Provider != "" {
			fmt.Printf("  %-30s (%s)\n", m.ID, m.Provider)
			continue
		}
		fmt.Printf("  %s\n", m.ID)
	}
}

func demoRouterConfig(ctx context.Context, c *client.Client) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│          Router Config Demo             │")
	fmt.Println("└─────────────────────────────────────────┘")

	routerID := os.Getenv("MODELMUX_ROUTER_ID")
	if routerID == "" {
		fmt.Println("\nMODELMUX_ROUTER_ID not set, skipping.")
		return
	}

	cfg, err := c.GetRouterConfig(ctx, routerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("\nRouter:      %s\n", cfg.RouterID)
	if cfg.Name != "" {
		fmt.Printf("Name:        %s\n", cfg.Name)
	}
	if cfg.Description != "" {
		fmt.Printf("Description: %s\n", cfg.Description)
	}
	if len(cfg.Models) > 0 {
		fmt.Println("Models:")
		for _, m := range cfg.Models {
			fmt.Printf("  - %s\n", m)
		}
	}
}
