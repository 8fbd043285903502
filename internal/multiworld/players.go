package multiworld

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxPlayerNameLength mirrors the server's slot name limit.
const MaxPlayerNameLength = 16

// PlayerConfig is one player's entry from a settings file.
type PlayerConfig struct {
	Name    string         `yaml:"name" json:"name"`
	Game    string         `yaml:"game" json:"game"`
	Options map[string]any `yaml:"-" json:"options"`
	Source  string         `yaml:"-" json:"source,omitempty"`
}

// LoadPlayers decodes every YAML document in r. Each document carries name,
// game, and a mapping keyed by the game name holding that game's options.
func LoadPlayers(r io.Reader, source string) ([]PlayerConfig, error) {
	dec := yaml.NewDecoder(r)
	var out []PlayerConfig
	for i := 0; ; i++ {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", source, i+1, err)
		}
		if len(doc) == 0 {
			continue
		}
		cfg, err := playerFromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", source, i+1, err)
		}
		cfg.Source = source
		out = append(out, cfg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no player documents", source)
	}
	return out, nil
}

func playerFromDoc(doc map[string]any) (PlayerConfig, error) {
	name, _ := doc["name"].(string)
	game, _ := doc["game"].(string)
	name = strings.TrimSpace(name)
	game = strings.TrimSpace(game)
	if name == "" {
		return PlayerConfig{}, errors.New("player name is required")
	}
	if game == "" {
		return PlayerConfig{}, errors.New("game is required")
	}

	opts := map[string]any{}
	switch section := doc[game].(type) {
	case nil:
	case map[string]any:
		opts = section
	default:
		return PlayerConfig{}, fmt.Errorf("options for %s must be a mapping, got %T", game, section)
	}
	return PlayerConfig{Name: name, Game: game, Options: opts}, nil
}

func LoadPlayerFile(path string) ([]PlayerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPlayers(f, filepath.Base(path))
}

// LoadPlayerDir reads every .yaml and .yml file in dir, in name order.
func LoadPlayerDir(dir string) ([]PlayerConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []PlayerConfig
	for _, n := range names {
		players, err := LoadPlayerFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		out = append(out, players...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no player files in %s", dir)
	}
	return out, nil
}

// expandPlayerNames applies {player} and {number} templates and rejects
// duplicate or oversized names. {number} counts earlier players sharing the
// same template, starting at 1.
func expandPlayerNames(players []PlayerConfig) ([]string, error) {
	out := make([]string, len(players))
	seenTemplate := map[string]int{}
	seenName := map[string]int{}
	for i, p := range players {
		seenTemplate[p.Name]++
		name := strings.NewReplacer(
			"{player}", strconv.Itoa(i+1),
			"{PLAYER}", strconv.Itoa(i+1),
			"{number}", strconv.Itoa(seenTemplate[p.Name]),
			"{NUMBER}", strconv.Itoa(seenTemplate[p.Name]),
		).Replace(p.Name)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("player %d has an empty name", i+1)
		}
		if len(name) > MaxPlayerNameLength {
			return nil, fmt.Errorf("player name %q is longer than %d characters", name, MaxPlayerNameLength)
		}
		if prev, dup := seenName[name]; dup {
			return nil, fmt.Errorf("player name %q used by players %d and %d", name, prev, i+1)
		}
		seenName[name] = i + 1
		out[i] = name
	}
	return out, nil
}
