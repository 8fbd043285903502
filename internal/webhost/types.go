package webhost

import (
	"github.com/polycosmos/hades-world/internal/multiworld"
)

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

const (
	ErrTypeValidation         = "validation_error"
	ErrTypeGameNotFound       = "game_not_found"
	ErrTypeNotFound           = "not_found"
	ErrTypeUnbeatable         = "unbeatable"
	ErrTypeTimeout            = "timeout"
	ErrTypeInternal           = "internal_error"
	ErrTypeServiceUnavailable = "service_unavailable"
)

type HealthResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Uptime  string   `json:"uptime"`
	Games   []string `json:"games"`
	Store   bool     `json:"store"`
}

type GameSummary struct {
	Game                  string `json:"game"`
	Description           string `json:"description"`
	DataVersion           int    `json:"data_version"`
	RequiredClientVersion string `json:"required_client_version"`
	TopologyPresent       bool   `json:"topology_present"`
	ItemCount             int    `json:"item_count"`
	LocationCount         int    `json:"location_count"`
}

type GamesResponse struct {
	Games []GameSummary `json:"games"`
}

type DataPackageResponse struct {
	Games map[string]multiworld.GameData `json:"games"`
}

type OptionsResponse struct {
	Game    string                 `json:"game"`
	Options []multiworld.OptionDef `json:"options"`
}

type TutorialsResponse struct {
	Game      string                `json:"game"`
	Tutorials []multiworld.Tutorial `json:"tutorials"`
}

// GenerateResponse summarises a finished generation. Placements are fetched
// separately.
type GenerateResponse struct {
	ID         string                  `json:"id"`
	Seed       int64                   `json:"seed"`
	SeedName   string                  `json:"seed_name"`
	Players    []multiworld.PlayerInfo `json:"players"`
	Spheres    int                     `json:"spheres"`
	Placements int                     `json:"placements"`
	Stored     bool                    `json:"stored"`
	SlotData   map[int]map[string]any  `json:"slot_data"`
}
