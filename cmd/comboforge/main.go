package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"comboforge/internal/cache"
	"comboforge/internal/handlers"
	"comboforge/internal/httpserver"
	"comboforge/internal/metrics"
	"comboforge/internal/pipeline"
	"comboforge/internal/provider"
	"comboforge/internal/ratelimit"
	"comboforge/pkg/logging/logging"
)

type Config struct {
	Port         string
	StoreBackend string // "memory" or "redis"
	RedisAddr    string
	KeyPrefix    string

	ProviderTimeout time.Duration

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	TogetherAPIKey  string
	TogetherBaseURL string
	TogetherModel   string
}

func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: getenv("STORE_BACKEND", "memory"),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		KeyPrefix:    getenv("KEY_PREFIX", "comboforge"),

		ProviderTimeout: getenvDuration("PROVIDER_TIMEOUT", 20*time.Second),

		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		AnthropicModel:   os.Getenv("ANTHROPIC_MODEL"),

		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),
		GroqModel:   os.Getenv("GROQ_MODEL"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),

		TogetherAPIKey:  os.Getenv("TOGETHER_API_KEY"),
		TogetherBaseURL: os.Getenv("TOGETHER_BASE_URL"),
		TogetherModel:   os.Getenv("TOGETHER_MODEL"),
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("comboforge exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := LoadConfig()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Duration("provider_timeout", cfg.ProviderTimeout),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.StoreBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured. At runtime the cache and
		// limiter degrade gracefully; a bad address at boot is an operator
		// error.
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Result cache -----
	resultCache := cache.NewStore(cache.Config{
		Backend: cfg.StoreBackend,
		TTL:     cache.DefaultTTL,
		Prefix:  cfg.KeyPrefix,
	}, redisClient)
	resultCache = cache.NewLoggingStore(resultCache)

	// ----- Rate limiter -----
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Backend: cfg.StoreBackend,
		Prefix:  cfg.KeyPrefix,
	}, redisClient)

	// ----- Provider chain (priority order) -----
	chain := provider.NewChain(
		provider.NewAnthropic(provider.AdapterConfig{
			BaseURL: cfg.AnthropicBaseURL,
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.ProviderTimeout,
		}),
		provider.NewGroq(provider.AdapterConfig{
			BaseURL: cfg.GroqBaseURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			Timeout: cfg.ProviderTimeout,
		}),
		provider.NewOpenAI(provider.AdapterConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.ProviderTimeout,
		}),
		provider.NewTogether(provider.AdapterConfig{
			BaseURL: cfg.TogetherBaseURL,
			APIKey:  cfg.TogetherAPIKey,
			Model:   cfg.TogetherModel,
			Timeout: cfg.ProviderTimeout,
		}),
	)

	if !chain.Configured() {
		logger.Warn("no provider credentials configured; generation requests will fail")
	}

	// ----- Pipeline + handler -----
	generator := pipeline.NewGenerator(chain, resultCache, limiter, cache.DefaultTTL)
	comboHandler := handlers.NewComboHandler(generator)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, comboHandler)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting comboforge",
		zap.String("addr", srv.Addr),
		zap.String("store_backend", cfg.StoreBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
