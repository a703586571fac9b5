// Package cli implements the borno CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/config"
	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/enrich"
	"github.com/rcliao/borno/internal/logger"
	"github.com/rcliao/borno/internal/speech"
	"github.com/rcliao/borno/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "borno",
	Short: "Bilingual Bengali/English dictionary",
	Long:  "A Bengali/English dictionary with favorites, history and AI-assisted entry editing. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $BORNO_DB or ~/.borno/borno.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $BORNO_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".borno", "borno.db")
}

// appEnv is everything a command needs, built once per invocation.
type appEnv struct {
	cfg       *config.Config
	log       zerolog.Logger
	dbPath    string
	slots     *store.SQLiteStore
	entries   *dictionary.EntryStore
	history   *dictionary.HistoryLog
	favorites *dictionary.FavoritesSet
	gen       enrich.Generator
	ctrl      *app.Controller
}

func openApp(ctx context.Context) (*appEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log)

	path := getDBPath(cfg)
	slots, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	env := &appEnv{
		cfg:       cfg,
		log:       log,
		dbPath:    path,
		slots:     slots,
		entries:   dictionary.NewEntryStore(slots, log.With().Str("component", "entries").Logger()),
		history:   dictionary.NewHistoryLog(slots, cfg.History.MaxRecords, log.With().Str("component", "history").Logger()),
		favorites: dictionary.NewFavoritesSet(slots, log.With().Str("component", "favorites").Logger()),
	}
	env.gen, err = enrich.NewFromConfig(cfg.Enrich, log)
	if err != nil {
		slots.Close()
		return nil, err
	}

	env.ctrl, err = app.New(ctx, app.Deps{
		Entries:    env.entries,
		History:    env.history,
		Favorites:  env.favorites,
		Generator:  env.gen,
		Recognizer: speech.NewRecognizer(cfg.Speech.STTCommand),
		Speaker:    speech.NewSpeaker(cfg.Speech.TTSCommand),
		InputLang:  cfg.Speech.InputLang,
		Log:        log.With().Str("component", "app").Logger(),
	})
	if err != nil {
		slots.Close()
		return nil, err
	}
	return env, nil
}

func (e *appEnv) Close() {
	e.ctrl.Close()
	e.slots.Close()
}

func mustOpenApp(cmd *cobra.Command) *appEnv {
	env, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	return env
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
