package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/polycosmos/hades-world/internal/config"
	"github.com/polycosmos/hades-world/internal/hades"
	"github.com/polycosmos/hades-world/internal/multiworld"
	"github.com/polycosmos/hades-world/internal/store"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		playersDir  string
		seed        int64
		outDir      string
		storePath   string
		noStore     bool
		spoiler     bool
		initConfig  bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&playersDir, "players", "Players", "directory of player YAML files")
	flag.Int64Var(&seed, "seed", 0, "generation seed (0 picks one)")
	flag.StringVar(&outDir, "out", "", "output directory (defaults to settings output_dir)")
	flag.StringVar(&storePath, "store", "", "sqlite history path (defaults to settings store_path)")
	flag.BoolVar(&noStore, "no-store", false, "do not record the generation")
	flag.BoolVar(&spoiler, "spoiler", true, "write a spoiler log next to the result")
	flag.BoolVar(&initConfig, "init-settings", false, "write the effective settings file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Hades World %s (%s) %s\n", version, commit, date)
		return
	}

	settings, err := config.Load()
	if err != nil {
		config.Exitf("load settings: %v", err)
	}
	if initConfig {
		if err := config.Save(settings); err != nil {
			config.Exitf("save settings: %v", err)
		}
		path, _ := config.SettingsPath()
		fmt.Printf("wrote %s\n", path)
		return
	}
	if outDir == "" {
		outDir = settings.OutputDir
	}
	if storePath == "" {
		storePath = settings.StorePath
	}

	logger := log.New(os.Stderr, "[GEN] ", log.LstdFlags)
	if !settings.StyxScribeFound() {
		logger.Printf("StyxScribe not found at %q; the client will need it to connect", settings.Hades.StyxScribePath)
	}

	players, err := loadPlayers(playersDir, flag.Args())
	if err != nil {
		config.Exitf("load players: %v", err)
	}

	reg := multiworld.NewRegistry()
	if err := hades.Register(reg); err != nil {
		config.Exitf("register %s: %v", hades.Game, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := multiworld.Generate(ctx, reg, players, multiworld.GenerateConfig{Seed: seed, Logger: logger})
	if err != nil {
		config.Exitf("generate: %v", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		config.Exitf("create output dir: %v", err)
	}
	resultPath := filepath.Join(outDir, "AP_"+res.SeedName+".json")
	if err := writeResult(resultPath, res); err != nil {
		config.Exitf("write result: %v", err)
	}
	logger.Printf("wrote %s", resultPath)

	if spoiler {
		spoilerPath := filepath.Join(outDir, "AP_"+res.SeedName+"_Spoiler.txt")
		if err := writeSpoiler(spoilerPath, res); err != nil {
			config.Exitf("write spoiler: %v", err)
		}
		logger.Printf("wrote %s", spoilerPath)
	}

	if !noStore {
		if err := record(ctx, storePath, res); err != nil {
			config.Exitf("record generation: %v", err)
		}
		logger.Printf("recorded generation %s in %s", res.ID, storePath)
	}
}

// loadPlayers reads the files named on the command line, or every YAML file
// in dir when none are given.
func loadPlayers(dir string, files []string) ([]multiworld.PlayerConfig, error) {
	if len(files) == 0 {
		return multiworld.LoadPlayerDir(dir)
	}
	var players []multiworld.PlayerConfig
	for _, f := range files {
		ps, err := multiworld.LoadPlayerFile(f)
		if err != nil {
			return nil, err
		}
		players = append(players, ps...)
	}
	return players, nil
}

func writeResult(path string, res *multiworld.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeSpoiler(path string, res *multiworld.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := multiworld.WriteSpoiler(f, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func record(ctx context.Context, path string, res *multiworld.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	return db.SaveGeneration(ctx, res)
}
