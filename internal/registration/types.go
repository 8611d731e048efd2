package registration

import (
	"strings"
	"time"
)

type Player struct {
	Name string
	Role string
}

// Filled reports whether the slot holds a non-blank name.
func (p Player) Filled() bool {
	return strings.TrimSpace(p.Name) != ""
}

// TeamRegistration is one accepted submission. Nil staff pointers mean the
// field was left blank.
type TeamRegistration struct {
	Seq         int
	Game        GameKind
	TeamName    string
	Players     []Player
	Reserves    []Player
	Manager     *string
	TeamLeader  *string
	Coach       *string
	SubmittedAt time.Time
}

// FormState is everything one form session holds.
type FormState struct {
	Game          GameKind
	TeamName      string
	Players       []Player
	Reserves      []Player
	Manager       string
	TeamLeader    string
	Coach         string
	Submitted     bool
	Pending       bool
	Registrations []TeamRegistration
}

func newFormState(game GameKind) FormState {
	state := FormState{Game: game}
	state.resetSlots()
	return state
}

// resetSlots replaces both slot arrays with empty slots sized for the
// currently selected game.
func (s *FormState) resetSlots() {
	cfg, _ := ConfigFor(s.Game)
	s.Players = make([]Player, cfg.MainPlayers)
	s.Reserves = make([]Player, cfg.Reserves)
}

func (s *FormState) staff(field StaffField) string {
	switch field {
	case StaffManager:
		return s.Manager
	case StaffTeamLeader:
		return s.TeamLeader
	case StaffCoach:
		return s.Coach
	default:
		return ""
	}
}

func (s *FormState) setStaff(field StaffField, value string) bool {
	switch field {
	case StaffManager:
		s.Manager = value
	case StaffTeamLeader:
		s.TeamLeader = value
	case StaffCoach:
		s.Coach = value
	default:
		return false
	}
	return true
}

func (s FormState) clone() FormState {
	out := s
	out.Players = append([]Player(nil), s.Players...)
	out.Reserves = append([]Player(nil), s.Reserves...)
	out.Registrations = cloneRegistrations(s.Registrations)
	return out
}

func cloneRegistrations(list []TeamRegistration) []TeamRegistration {
	if list == nil {
		return nil
	}
	out := make([]TeamRegistration, len(list))
	for i, reg := range list {
		out[i] = reg.clone()
	}
	return out
}

func (r TeamRegistration) clone() TeamRegistration {
	out := r
	out.Players = append([]Player(nil), r.Players...)
	out.Reserves = append([]Player(nil), r.Reserves...)
	out.Manager = cloneString(r.Manager)
	out.TeamLeader = cloneString(r.TeamLeader)
	out.Coach = cloneString(r.Coach)
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
