package registration

import "errors"

// GameKind identifies one of the supported competition titles.
type GameKind string

const (
	GameROV       GameKind = "ROV"
	GameFreefire  GameKind = "Freefire"
	GameSF6       GameKind = "SF6"
	GameTekken    GameKind = "Tekken"
	GameEFootball GameKind = "eFootball"
)

// DefaultGame is selected when a form session starts.
const DefaultGame = GameROV

var ErrUnknownGame = errors.New("unknown game")

// StaffField names one of the optional-or-required management roles.
type StaffField int

const (
	StaffManager StaffField = iota
	StaffTeamLeader
	StaffCoach
)

// staffOrder is the order required staff are checked and rendered in.
var staffOrder = []StaffField{StaffManager, StaffTeamLeader, StaffCoach}

func StaffFields() []StaffField {
	out := make([]StaffField, len(staffOrder))
	copy(out, staffOrder)
	return out
}

func (f StaffField) String() string {
	switch f {
	case StaffManager:
		return "manager"
	case StaffTeamLeader:
		return "team leader"
	case StaffCoach:
		return "coach"
	default:
		return "unknown"
	}
}

// GameConfig is the static roster shape and staff rule for one game.
type GameConfig struct {
	MainPlayers   int
	Reserves      int
	RequiredStaff []StaffField
}

// Requires reports whether the staff field blocks submission for this game.
func (c GameConfig) Requires(field StaffField) bool {
	for _, required := range c.RequiredStaff {
		if required == field {
			return true
		}
	}
	return false
}

var gameOrder = []GameKind{GameROV, GameFreefire, GameSF6, GameTekken, GameEFootball}

var gameConfigs = map[GameKind]GameConfig{
	GameROV:       {MainPlayers: 5, Reserves: 2, RequiredStaff: []StaffField{StaffManager, StaffTeamLeader, StaffCoach}},
	GameFreefire:  {MainPlayers: 4, Reserves: 2},
	GameSF6:       {MainPlayers: 1, Reserves: 0},
	GameTekken:    {MainPlayers: 1, Reserves: 0},
	GameEFootball: {MainPlayers: 1, Reserves: 0},
}

// Games returns every supported game in display order.
func Games() []GameKind {
	out := make([]GameKind, len(gameOrder))
	copy(out, gameOrder)
	return out
}

func (g GameKind) Valid() bool {
	_, ok := gameConfigs[g]
	return ok
}

func ParseGameKind(raw string) (GameKind, error) {
	game := GameKind(raw)
	if !game.Valid() {
		return "", ErrUnknownGame
	}
	return game, nil
}

// ConfigFor returns a copy of the configuration for g. Unknown games yield
// the zero config and false.
func ConfigFor(g GameKind) (GameConfig, bool) {
	cfg, ok := gameConfigs[g]
	if !ok {
		return GameConfig{}, false
	}
	staff := make([]StaffField, len(cfg.RequiredStaff))
	copy(staff, cfg.RequiredStaff)
	cfg.RequiredStaff = staff
	return cfg, true
}
