package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ruleta-game/ruleta/internal/common/clock"
	"github.com/ruleta-game/ruleta/internal/common/uuid"
	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/ruleta-game/ruleta/internal/repositories/ledger"
	"github.com/ruleta-game/ruleta/internal/repositories/queue"
	"github.com/ruleta-game/ruleta/internal/repositories/round"
	"github.com/ruleta-game/ruleta/internal/repositories/state"
	"github.com/ruleta-game/ruleta/internal/repositories/user"
	"github.com/ruleta-game/ruleta/internal/rng"
	"github.com/ruleta-game/ruleta/internal/server"
	gameService "github.com/ruleta-game/ruleta/internal/services/game"
	"github.com/ruleta-game/ruleta/internal/ws"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	userRepo, err := user.NewRedis(&user.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatalf("Failed to create user repository: %v", err)
	}

	stateRepo, err := state.NewRedis(&state.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatalf("Failed to create state repository: %v", err)
	}

	roundRepo, err := round.NewRedis(&round.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatalf("Failed to create round repository: %v", err)
	}

	ledgerRepo, err := ledger.NewRedis(&ledger.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatalf("Failed to create ledger repository: %v", err)
	}

	queueRepo, err := queue.NewRedis(&queue.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatalf("Failed to create queue repository: %v", err)
	}

	gameConfig := config.Default()
	gameConfig.MaxActivePlayers = getEnvInt("MAX_ACTIVE_PLAYERS", gameConfig.MaxActivePlayers)

	// Initialize game service
	gameSvc, err := gameService.New(&gameService.Config{
		GameConfig:    gameConfig,
		UserRepo:      userRepo,
		StateRepo:     stateRepo,
		RoundRepo:     roundRepo,
		LedgerRepo:    ledgerRepo,
		QueueRepo:     queueRepo,
		Rand:          rng.New(&rng.Config{}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Fatalf("Failed to create game service: %v", err)
	}

	// Catch interrupt signals
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sig := <-c
		logger.Infof("Signal: %s", sig)
		cancel()
	}()

	addr := getEnv("LISTEN_ADDR", ":8080")
	server.Start(ctx, addr, gameSvc, ws.NewHub(), logger)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
