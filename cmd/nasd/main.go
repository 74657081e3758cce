package main

import (
	_ "embed"
	"flag"
	"os"
	"strings"
	"time"

	"nasfs/pkg/config"
	"nasfs/pkg/fstree"
	"nasfs/pkg/log"
	"nasfs/pkg/server"
	"nasfs/pkg/userdb"
)

const (
	storageDirPerm = 0750
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	configPath := flag.String("config", "", "Configuration file path (YAML)")
	storageRoot := flag.String("storage", "", "Storage root path (overrides config)")
	webDir := flag.String("web", "", "Web assets directory path (overrides config)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	dbPath := flag.String("db", "", "User database path (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	jsonLogs := flag.Bool("json-logs", false, "Log as JSON instead of console lines")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *storageRoot, *webDir, *addr, *dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.Log.JSON || *jsonLogs {
		log.SetJSONOutput()
	}
	if cfg.Log.Debug || *debug {
		log.SetDebugMode()
		log.Debug().Msg("Debug mode enabled")
	}

	if err := os.MkdirAll(cfg.Storage.Root, storageDirPerm); err != nil {
		log.Fatal().Err(err).Str("storage_root", cfg.Storage.Root).Msg("Failed to create storage root")
	}

	if _, err := os.Stat(cfg.Web.Dir); os.IsNotExist(err) {
		log.Fatal().Str("web_dir", cfg.Web.Dir).Msg("Web directory does not exist")
	}

	tree, err := fstree.New(cfg.Storage.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid storage root")
	}

	users, err := userdb.NewStore(cfg.Storage.DatabaseFile)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.Storage.DatabaseFile).Msg("Failed to open user database")
	}
	defer func() { _ = users.Close() }()

	if err := users.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize user database")
	}

	if purged, err := users.PurgeExpired(); err != nil {
		log.Warn().Err(err).Msg("Failed to purge expired sessions")
	} else if purged > 0 {
		log.Info().Int64("sessions", purged).Msg("Purged expired sessions")
	}

	nas := server.NewNASServer(tree, users, cfg.Web.Dir, cfg.Web.Theme,
		strings.TrimSpace(Version), time.Duration(cfg.Auth.SessionTTL))

	if err := nas.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	os.Exit(0)
}

// loadConfig reads the optional config file and applies flag overrides on
// top of it.
func loadConfig(path, storageRoot, webDir, addr, dbPath string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if storageRoot != "" {
		cfg.Storage.Root = storageRoot
		// A new root moves the database with it unless -db pins the
		// location explicitly.
		if dbPath == "" {
			cfg.Storage.DatabaseFile = ""
		}
	}
	if dbPath != "" {
		cfg.Storage.DatabaseFile = dbPath
	}
	if webDir != "" {
		cfg.Web.Dir = webDir
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}
