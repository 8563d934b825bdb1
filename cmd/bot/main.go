package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/etr-bot-discord/internal/config"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/handlers"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/middleware"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/flashbackprompts"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
	"github.com/KirkDiggler/etr-bot-discord/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	providerConfig := &services.ProviderConfig{}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis when configured
	if cfg.Redis.Addr != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)

		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			cancel()
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to in-memory repositories")
			redisClient = nil
		} else {
			cancel()
			log.Println("Successfully connected to Redis")

			providerConfig.RecordRepository = rollrecords.NewRedisRepository(&rollrecords.RedisRepoConfig{
				Client: redisClient,
			})
			providerConfig.ActorRepository = actors.NewRedisRepository(&actors.RedisRepoConfig{
				Client: redisClient,
			})
			providerConfig.PromptRepository = flashbackprompts.NewRedisRepository(&flashbackprompts.RedisRepoConfig{
				Client: redisClient,
			})

			log.Println("Using Redis for persistence")
		}
	} else {
		log.Println("No Redis address configured, using in-memory repositories")
	}

	// Create service provider
	serviceProvider := services.NewProvider(providerConfig)

	// Build the interaction pipeline
	pipeline := core.NewPipeline()
	pipeline.Use(
		middleware.RecoveryMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.ErrorMiddleware(nil),
	)

	if err := handlers.RegisterRoutes(pipeline, serviceProvider); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if err := pipeline.Execute(context.Background(), s, i); err != nil {
			log.Printf("Failed to handle interaction: %v", err)
		}
	})

	// Open connection to Discord
	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if clientErr := dg.Close(); clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Register commands. Empty guild ID registers them globally.
	for _, cmd := range handlers.Commands() {
		if _, err := dg.ApplicationCommandCreate(cfg.Discord.AppID, cfg.Discord.GuildID, cmd); err != nil {
			log.Printf("Failed to register command %s: %v", cmd.Name, err)
			return
		}
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
