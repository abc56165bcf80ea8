package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/avalon/internal/common/clock"
	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/handlers/discord"
	"github.com/KirkDiggler/avalon/internal/random"
	"github.com/KirkDiggler/avalon/internal/repositories/game"
	"github.com/KirkDiggler/avalon/internal/repositories/history"
	"github.com/KirkDiggler/avalon/internal/repositories/player"
	gameService "github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Config is read from the environment, after an optional .env file
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	// Seed fixes the dealing order, for reproducing a game
	Seed int64 `env:"AVALON_SEED"`

	LogLevel      string        `env:"LOG_LEVEL"      envDefault:"info"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"15s"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "avalon",
	})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatal("Failed to load .env file", "err", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal("Failed to parse config", "err", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("Invalid LOG_LEVEL", "value", cfg.LogLevel, "err", err)
	}
	logger.SetLevel(level)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "err", err)
	}

	// Initialize repositories. Live games stay in memory; results go to Redis.
	gameRepo := game.NewMemory()

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create player repository", "err", err)
	}

	historyRepo, err := history.NewRedis(&history.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create history repository", "err", err)
	}

	rng := random.New(&random.Config{Seed: cfg.Seed})

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Random: rng,
	})
	if err != nil {
		logger.Fatal("Failed to create messaging service", "err", err)
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal("Failed to create Discord session", "err", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	notifier, err := discord.NewNotifier(&discord.NotifierConfig{
		Messenger:        session,
		MessagingService: messagingSvc,
		Timeout:          cfg.NotifyTimeout,
		Logger:           logger.WithPrefix("notifier"),
	})
	if err != nil {
		logger.Fatal("Failed to create notifier", "err", err)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		GameRepo:      gameRepo,
		PlayerRepo:    playerRepo,
		HistoryRepo:   historyRepo,
		Notifier:      notifier,
		Random:        rng,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Logger:        logger.WithPrefix("game"),
	})
	if err != nil {
		logger.Fatal("Failed to create game service", "err", err)
	}

	bot, err := discord.New(&discord.Config{
		Session:          session,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Notifier:         notifier,
		Logger:           logger.WithPrefix("discord"),
	})
	if err != nil {
		logger.Fatal("Failed to create Discord bot", "err", err)
	}

	if err := bot.Start(); err != nil {
		logger.Fatal("Failed to start Discord bot", "err", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	// Live games only exist in memory; name the channels that lose theirs
	if live, err := gameRepo.ListGames(context.Background(), &game.ListGamesInput{}); err == nil && len(live.Games) > 0 {
		channels := make([]string, 0, len(live.Games))
		for _, g := range live.Games {
			channels = append(channels, g.ID())
		}
		logger.Warn("Shutting down with games in progress", "count", len(channels), "channels", channels)
	}

	if err := bot.Stop(); err != nil {
		logger.Error("Error stopping bot", "err", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Error closing Redis client", "err", err)
	}

	logger.Info("Bot has been shut down")
}
