// Command chatprobe sends a single message to the configured completion
// provider as one personality and prints the reply or the failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/persona-chat/backend/internal/config"
	"github.com/zhouzirui/persona-chat/backend/internal/logging"
	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/service/ai"
)

func main() {
	personalityID := flag.String("personality", "alex_sarcastic", "personality id to answer as")
	text := flag.String("text", "", "message to send")
	timeout := flag.Duration("timeout", 45*time.Second, "overall request timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: no .env file loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log.Logger = logging.New(config.LogConfig{Level: cfg.Log.Level, Console: true})

	if *text == "" {
		flag.Usage()
		log.Fatal().Msg("-text is required")
	}

	p, ok := personality.Default().Get(*personalityID)
	if !ok {
		log.Fatal().Str("personality", *personalityID).Msg("unknown personality")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	completer, err := ai.New(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build completer")
	}

	os.Exit(probe(ctx, completer, p, *text))
}

func probe(ctx context.Context, completer ai.Completer, p personality.Personality, text string) int {
	entries := ai.BuildContext(p.SystemPrompt, nil, text)

	start := time.Now()
	outcome := completer.Complete(ctx, entries)
	elapsed := time.Since(start)

	if !outcome.OK() {
		event := log.Error().Err(outcome.Err).Str("provider", completer.Name()).Dur("elapsed", elapsed)
		var aiErr *ai.Error
		if errors.As(outcome.Err, &aiErr) {
			event = event.Str("kind", string(aiErr.Kind)).Int("status", aiErr.Status)
		}
		event.Msg("completion failed")
		return 1
	}

	log.Info().Str("provider", completer.Name()).Dur("elapsed", elapsed).Msg("completion succeeded")
	fmt.Printf("%s: %s\n", p.Name, outcome.Text)
	return 0
}
