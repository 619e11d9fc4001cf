package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"triponic/internal/ai"
	"triponic/internal/modules/trip"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	svc := trip.NewService(provider)

	input := "My partner and I want a relaxed week somewhere warm with great street food, nothing too expensive"
	fmt.Printf("User: %s\n", input)

	patch, err := svc.ExtractPreferences(ctx, input)
	if err != nil {
		log.Fatalf("Error extracting preferences: %v", err)
	}

	fmt.Printf("Destination type: %s\n", patch.DestinationType)
	fmt.Printf("Duration: %s\n", patch.Duration)
	fmt.Printf("Budget: %s\n", patch.Budget)
	fmt.Printf("Pace: %s\n", patch.Pace)
	fmt.Printf("Companions: %s\n", patch.Companions)
	if patch.AdditionalNotes != "" {
		fmt.Printf("Notes: %s\n", patch.AdditionalNotes)
	}
}
