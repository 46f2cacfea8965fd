package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelmux/modelmux-go/client"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	godotenv.Load()
	ctx := context.Background()

	fmt.Println("╔════════════════════════════════════════╗")
	fmt.Println("║        modelmux - Client Demo          ║")
	fmt.Println("╚════════════════════════════════════════╝")
	fmt.Println()

	apiKey := os.Getenv("MODELMUX_API_KEY")
	if apiKey == "" {
		fmt.Println("  ✗ MODELMUX_API_KEY not set.")
		return
	}

	cfg := client.Config{APIKey: apiKey}
	if baseURL := os.Getenv("MODELMUX_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if routerID := os.Getenv("MODELMUX_ROUTER_ID"); routerID != "" {
		cfg.RouterID = routerID
		fmt.Printf("Using router: %s\n", routerID)
	}

	c, err := client.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		return
	}
	fmt.Println()

	for {
		indices := showMenu()
		if indices == nil {
			fmt.Println("\nGoodbye!")
			return
		}

		runDemos(ctx, c, indices)
	}
}
