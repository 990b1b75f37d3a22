package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gigiceria-quiz/internal/app"
	"gigiceria-quiz/internal/bank"
	"gigiceria-quiz/internal/config"
	"gigiceria-quiz/internal/domain"
	filestore "gigiceria-quiz/internal/infra/file"
	"gigiceria-quiz/internal/infra/memory"
	pgbank "gigiceria-quiz/internal/infra/postgres"
	redisstore "gigiceria-quiz/internal/infra/redis"
	"gigiceria-quiz/internal/kv"
	"gigiceria-quiz/internal/scores"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// runtime bundles everything a command needs, wired from config.
type runtime struct {
	cfg         config.Config
	questions   []domain.Question
	quizCfg     domain.QuizConfig
	store       kv.Store
	scoreLog    *scores.Log
	profiles    *scores.ProfileStore
	leaderboard *app.Leaderboard
	cleanup     func()
}

func buildRuntime(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, cleanup: func() {}}

	questions, cleanupBank, err := loadQuestions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.questions = questions

	store, cleanupStore, err := openStore(cfg)
	if err != nil {
		cleanupBank()
		return nil, err
	}
	rt.store = store
	rt.cleanup = func() {
		cleanupStore()
		cleanupBank()
	}

	rt.quizCfg = domain.ConfigFor(
		questions,
		config.Duration(cfg.Quiz.TimePerQuestion, 30*time.Second),
		passingScore(cfg),
	)
	rt.scoreLog = scores.NewLog(store, rt.quizCfg.MaxScore)
	rt.profiles = scores.NewProfileStore(store)
	rt.leaderboard = app.NewLeaderboard(rt.scoreLog, rt.quizCfg.MaxScore)
	return rt, nil
}

func (rt *runtime) newEngine() (*app.Engine, error) {
	return app.NewEngine(rt.questions, rt.quizCfg, rt.scoreLog, rt.profiles)
}

func passingScore(cfg config.Config) int {
	if cfg.Quiz.PassingScore > 0 {
		return cfg.Quiz.PassingScore
	}
	return 70
}

func loadQuestions(ctx context.Context, cfg config.Config) ([]domain.Question, func(), error) {
	bankID := cfg.Bank.ID
	if bankID == "" {
		bankID = bank.DefaultID
	}
	ttl := config.Duration(cfg.Bank.TTL, 10*time.Minute)

	switch cfg.Bank.Source {
	case "", "static":
		return bank.Default().Questions, func() {}, nil
	case "file":
		if cfg.Bank.Path == "" {
			return nil, nil, fmt.Errorf("bank source is file but bank.path is empty")
		}
		cache := memory.NewBankCache(filestore.NewBankLoader(cfg.Bank.Path), ttl)
		loaded, err := cache.LoadBank(ctx, bankID)
		if err != nil {
			return nil, nil, err
		}
		return loaded.Questions, func() {}, nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("bank source is postgres but postgres.url is empty")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		cache := memory.NewBankCache(pgbank.NewBankLoader(pool), ttl)
		loaded, err := cache.LoadBank(ctx, bankID)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return loaded.Questions, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown bank source %q", cfg.Bank.Source)
	}
}

func openStore(cfg config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "", "file":
		dir := cfg.Storage.Dir
		if dir == "" {
			dir = defaultDataDir()
		}
		store, err := filestore.NewStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("storage backend is redis but redis.addr is empty")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.Duration(cfg.Redis.TTL, 0)
		return redisstore.NewStore(client, ttl), func() { _ = client.Close() }, nil
	case "memory":
		return memory.NewStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func defaultDataDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "gigiceria-quiz")
	}
	return ".gigiceria-quiz"
}
