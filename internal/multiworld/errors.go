package multiworld

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGame     = errors.New("unknown game")
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownOption   = errors.New("unknown option")
	ErrInvalidOption   = errors.New("invalid option value")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrPoolMismatch    = errors.New("item pool does not match location count")
	ErrFillFailed      = errors.New("fill failed")
	ErrUnbeatable      = errors.New("seed is not beatable")
)

// Stage names the generation step an error came from.
type Stage string

const (
	StageOptions       Stage = "options"
	StageGenerateEarly Stage = "generate_early"
	StageCreateRegions Stage = "create_regions"
	StageCreateItems   Stage = "create_items"
	StageSetRules      Stage = "set_rules"
	StageValidate      Stage = "validate"
	StageFill          Stage = "fill"
	StageSlotData      Stage = "fill_slot_data"
)

// GenerationError aborts a generation run. Player is 0 when the failure is
// not tied to a single slot.
type GenerationError struct {
	Stage  Stage
	Player int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Player == 0 {
		return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("generation failed at %s for player %d: %v", e.Stage, e.Player, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
