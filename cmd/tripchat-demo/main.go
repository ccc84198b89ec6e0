// README: Interactive extraction demo; reads messages from stdin and carries the conversation state between lines.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripchat/internal/ai"
	"tripchat/internal/modules/travel"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	var model travel.Extractor
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		provider, err := ai.NewGeminiProvider(ctx, key, os.Getenv("TRIPCHAT_LLM_MODEL"))
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		defer provider.Close()
		model = travel.NewModelExtractor(provider, zap.NewNop(), time.Now)
	} else {
		fmt.Println("GEMINI_API_KEY not set; running with pattern rules only")
	}
	pipeline := travel.NewPipeline(travel.NewPatternExtractor(), model, time.Now, zap.NewNop())

	var carried travel.TravelInfo
	var state travel.State
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		msg := strings.TrimSpace(scanner.Text())
		if msg == "" {
			fmt.Print("> ")
			continue
		}
		if msg == "/reset" {
			carried, state = travel.TravelInfo{}, ""
			fmt.Print("state cleared\n> ")
			continue
		}

		intent := travel.Classify(msg)
		res := pipeline.Run(ctx, travel.Turn{
			Message:  msg,
			Carried:  carried,
			State:    state,
			UseModel: intent != travel.IntentVague,
		})
		out, _ := json.Marshal(res.Info)
		fmt.Printf("Intent: %s\nTravel: %s\nState:  %s (model used: %t)\n", intent, out, res.State, res.UsedModel)
		fmt.Printf("Reply:\n%s\n> ", travel.Prompt(res.Info))

		carried, state = res.Info, res.State
		if state == travel.StateComplete {
			carried, state = travel.TravelInfo{}, ""
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
