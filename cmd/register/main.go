package main

import (
	"log"

	"github.com/spec-kit/verify-service/internal/config"
	"github.com/spec-kit/verify-service/internal/platform/discord"
)

// Registers the guild slash commands and exits. Run after deploying a
// build that changes the command set.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("registering slash commands...")
	if err := discord.RegisterCommands(cfg.Discord); err != nil {
		log.Fatalf("failed to register commands: %v", err)
	}
	log.Println("slash commands registered")
}
