// Command attendance-models lists the generation models available to the
// configured Anthropic API key.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/autowhat/attendance-agent/llm"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("ATTEND_MODEL_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("[MAIN] set ATTEND_MODEL_API_KEY or ANTHROPIC_API_KEY")
	}

	gen := llm.NewAnthropic(llm.AnthropicConfig{APIKey: apiKey})
	ids, err := gen.ListModels(context.Background())
	if err != nil {
		log.Fatalf("[MAIN] list models: %v", err)
	}

	for _, id := range ids {
		fmt.Println(id)
	}
}
