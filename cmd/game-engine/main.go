package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NathanVRyver/game-engine/internal/config"
	coresys "github.com/NathanVRyver/game-engine/internal/core/system"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/game"
	"github.com/NathanVRyver/game-engine/internal/persist"
	"github.com/NathanVRyver/game-engine/internal/scripting"
	"github.com/NathanVRyver/game-engine/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(mapID string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           game-engine  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mstart map:\033[0m %s\n\n", mapID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("GAME_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Defaults()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.StartMap)

	// 3. Load data catalogs (empty paths fall back to built-in tables)
	printSection("data")

	items, err := loadItems(cfg.Data.ItemsPath)
	if err != nil {
		return err
	}
	printStat("item templates", items.Count())

	quests, err := loadQuests(cfg.Data.QuestsPath)
	if err != nil {
		return err
	}
	printStat("quest definitions", quests.Count())

	dialogues, err := loadDialogues(cfg.Data.DialoguesPath)
	if err != nil {
		return err
	}
	printStat("dialogue trees", dialogues.Count())

	npcs, err := loadNpcs(cfg.Data.NpcsPath)
	if err != nil {
		return err
	}
	printStat("npc templates", npcs.Count())
	fmt.Println()

	// 4. Lua scripting engine
	var scripts *scripting.Engine
	if cfg.Scripts.Dir != "" {
		scripts, err = scripting.NewEngine(cfg.Scripts.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer scripts.Close()
	}

	// 5. Optional PostgreSQL save store
	var saves game.SaveStore
	if cfg.Database.Enabled {
		printSection("database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("migrations applied")
		fmt.Println()

		saves = persist.NewSaveRepo(db)
	}

	// 6. Build the game
	g, err := game.New(game.Deps{
		Config:    cfg,
		Log:       log,
		Items:     items,
		Quests:    quests,
		Dialogues: dialogues,
		Npcs:      npcs,
		Scripts:   scripts,
		Saves:     saves,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	// 6a. Restore the autosave slot if one exists
	if saves != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		restored, err := g.LoadSnapshot(ctx, cfg.Game.AutosaveSlot)
		cancel()
		if err != nil {
			return fmt.Errorf("load save: %w", err)
		}
		if restored {
			printOK(fmt.Sprintf("restored save slot %q", cfg.Game.AutosaveSlot))
		}
	}

	// 6b. Spawn world NPCs from templates
	spawned := 0
	npcs.Each(func(info *data.NpcInfo) {
		if !info.Spawn {
			return
		}
		if id := g.NPCs.CreateNPC(info.NpcID, info.SpawnX, info.SpawnY); !id.IsZero() {
			spawned++
		}
	})
	printStat("npcs spawned", spawned)

	// 7. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(g.Bus))
	runner.Register(system.NewQuestProgressSystem(g.Bus, g.QuestLog))
	runner.Register(system.NewAutosaveSystem(g, cfg.Game.AutosaveSlot, cfg.Game.AutosaveInterval.Std(), log))
	runner.Register(system.NewCleanupSystem(g.World))

	// 8. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tickRate := cfg.Game.TickRate.Std()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("game loop started (tick: %s)", tickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(tickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			if saves != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := g.SaveSnapshot(ctx, cfg.Game.AutosaveSlot); err != nil {
					log.Error("final save failed", zap.Error(err))
				}
				cancel()
			}
			log.Info("stopped")
			return nil
		}
	}
}

func loadItems(path string) (*data.ItemTable, error) {
	if path == "" {
		return data.DefaultItemTable(), nil
	}
	t, err := data.LoadItemTable(path)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return t, nil
}

func loadQuests(path string) (*data.QuestTable, error) {
	if path == "" {
		return data.DefaultQuestTable(), nil
	}
	t, err := data.LoadQuestTable(path)
	if err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	return t, nil
}

func loadDialogues(path string) (*data.DialogueTable, error) {
	if path == "" {
		return data.DefaultDialogueTable(), nil
	}
	t, err := data.LoadDialogueTable(path)
	if err != nil {
		return nil, fmt.Errorf("load dialogues: %w", err)
	}
	return t, nil
}

func loadNpcs(path string) (*data.NpcTable, error) {
	if path == "" {
		return data.DefaultNpcTable(), nil
	}
	t, err := data.LoadNpcTable(path)
	if err != nil {
		return nil, fmt.Errorf("load npcs: %w", err)
	}
	return t, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
