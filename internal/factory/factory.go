package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/worldsmp/worlds-server/internal/dependencies/clock"
	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/registry"
	"github.com/worldsmp/worlds-server/internal/services/auth"
	"github.com/worldsmp/worlds-server/internal/services/chat"
	"github.com/worldsmp/worlds-server/internal/services/combat"
	"github.com/worldsmp/worlds-server/internal/services/players"
	"github.com/worldsmp/worlds-server/internal/services/session"
	"github.com/worldsmp/worlds-server/internal/services/world"
	"github.com/worldsmp/worlds-server/internal/storage"
	"github.com/worldsmp/worlds-server/internal/storage/memory"
	redisstorage "github.com/worldsmp/worlds-server/internal/storage/redis"
	"github.com/worldsmp/worlds-server/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.AccountStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry      *registry.Registry
	WorldService  *world.Service
	PlayerService *players.Service
	CombatService *combat.Service
	ChatService   *chat.Service
	AuthService   *auth.Service
	Session       *session.Controller

	// Transport
	Hub           *ws.Hub
	SocketHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// ServerConfig is the advertised server identity (optional)
	// If zero value, defaults to session.DefaultServerConfig()
	ServerConfig session.ServerConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.AccountStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.HashIterations == 0 {
		authCfg = auth.DefaultConfig()
	}

	serverCfg := cfg.ServerConfig
	if serverCfg.MaxPlayers == 0 {
		serverCfg = session.DefaultServerConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, serverCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.AccountStore,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	serverCfg session.ServerConfig,
	logger *slog.Logger,
) *App {
	reg := registry.New(rnd)
	worldService := world.New(reg, rnd, logger)
	playerService := players.New(rnd, logger)
	combatService := combat.New(reg, playerService, rnd, logger)
	chatService := chat.New()
	authService := auth.New(store, clk, rnd, authCfg, logger)

	hub := ws.NewHub(logger)
	sessionController := session.NewController(
		authService, worldService, playerService, combatService, chatService,
		reg, hub, serverCfg, logger,
	)
	socketHandler := ws.NewHandler(hub, sessionController, rnd, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Registry:      reg,
		WorldService:  worldService,
		PlayerService: playerService,
		CombatService: combatService,
		ChatService:   chatService,
		AuthService:   authService,
		Session:       sessionController,
		Hub:           hub,
		SocketHandler: socketHandler,
	}
}
