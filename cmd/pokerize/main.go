package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/pokerize/pokerize/internal/identity"
	"github.com/pokerize/pokerize/internal/tui"
	"github.com/pokerize/pokerize/pkg/store"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// fileConfig is the optional ~/.pokerize/config.yaml.
type fileConfig struct {
	NatsURL string   `yaml:"nats_url"`
	Bucket  string   `yaml:"bucket"`
	Deck    []string `yaml:"deck"`
}

// loadFileConfig reads dir/config.yaml; a missing file is not an error.
func loadFileConfig(dir string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// validRoomCode limits codes to store-key-safe alphanumeric tokens.
func validRoomCode(code string) bool {
	if len(code) == 0 || len(code) > 32 {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// setupLogging sends the global logger to a file; stdout belongs to the UI.
func setupLogging(dir string) {
	level, err := zerolog.ParseLevel(firstNonEmpty(os.Getenv("POKERIZE_LOG_LEVEL"), "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = io.Discard
	if err := os.MkdirAll(dir, 0o700); err == nil {
		if f, err := os.OpenFile(filepath.Join(dir, "pokerize.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			w = f
		}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func run() error {
	// A .env next to the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	roomArg := ""
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("pokerize " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		default:
			roomArg = os.Args[1]
		}
	}

	dir := os.Getenv("POKERIZE_HOME")
	if dir == "" {
		var err error
		dir, err = identity.DefaultDir()
		if err != nil {
			return err
		}
	}
	setupLogging(dir)

	fc, err := loadFileConfig(dir)
	if err != nil {
		return err
	}

	roomID := roomArg
	if roomID == "" {
		roomID = identity.NewToken(identity.TokenLen)
		log.Info().Str("room", roomID).Msg("starting a fresh room")
	}
	if !validRoomCode(roomID) {
		return fmt.Errorf("invalid room code %q (letters and digits only)", roomID)
	}

	st, err := openStore(fc)
	if err != nil {
		return err
	}
	defer st.Close()

	app := tui.NewApp(tui.Config{
		RoomID: roomID,
		Store:  st,
		Cache:  identity.NewCache(dir),
		Deck:   fc.Deck,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func openStore(fc fileConfig) (store.Store, error) {
	// POKERIZE_OFFLINE plays a solo room without a server — mostly useful
	// for trying the UI.
	if os.Getenv("POKERIZE_OFFLINE") != "" {
		return store.NewMemory(), nil
	}

	cfg := store.DefaultKVConfig()
	cfg.URL = firstNonEmpty(os.Getenv("POKERIZE_NATS_URL"), fc.NatsURL, cfg.URL)
	cfg.Bucket = firstNonEmpty(os.Getenv("POKERIZE_BUCKET"), fc.Bucket, cfg.Bucket)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := store.OpenKV(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}
	return st, nil
}

func printHelp() {
	fmt.Println(`pokerize — planning poker at the terminal

Usage:
  pokerize              start a fresh room and share its code
  pokerize <room-code>  join an existing room
  pokerize version      print the version

Environment:
  POKERIZE_NATS_URL     NATS server for the shared room store
  POKERIZE_BUCKET       key/value bucket name (default "pokerize")
  POKERIZE_HOME         config and cache dir (default ~/.pokerize)
  POKERIZE_LOG_LEVEL    zerolog level for ~/.pokerize/pokerize.log
  POKERIZE_OFFLINE      set to play a local room without a server

In the room: ←/→ and enter pick a card, v reveals, n starts a new
round, i copies an invite, e edits your name, q leaves.`)
}
