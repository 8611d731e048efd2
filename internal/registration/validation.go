package registration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTeamNameRequired     = errors.New("team name required")
	ErrMainRosterIncomplete = errors.New("main roster incomplete")
	ErrManagerRequired      = errors.New("manager required")
	ErrTeamLeaderRequired   = errors.New("team leader required")
	ErrCoachRequired        = errors.New("coach required")
	ErrSlotOutOfRange       = errors.New("slot index out of range")
	ErrUnknownStaffField    = errors.New("unknown staff field")
)

// ValidationError is a user-correctable rejection of a submission.
type ValidationError struct {
	Code    string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

var staffErrors = map[StaffField]error{
	StaffManager:    ErrManagerRequired,
	StaffTeamLeader: ErrTeamLeaderRequired,
	StaffCoach:      ErrCoachRequired,
}

var staffCodes = map[StaffField]string{
	StaffManager:    "manager_required",
	StaffTeamLeader: "team_leader_required",
	StaffCoach:      "coach_required",
}

// validate checks state against the rule table for its game and returns the
// first failure.
func validate(state *FormState) error {
	cfg, ok := ConfigFor(state.Game)
	if !ok {
		return fmt.Errorf("validate %q: %w", state.Game, ErrUnknownGame)
	}
	if strings.TrimSpace(state.TeamName) == "" {
		return &ValidationError{
			Code:    "team_name_required",
			Message: ErrTeamNameRequired.Error(),
			err:     ErrTeamNameRequired,
		}
	}
	if len(state.Players) != cfg.MainPlayers || !allFilled(state.Players) {
		return &ValidationError{
			Code:    "main_roster_incomplete",
			Message: fmt.Sprintf("must fill all %d main players", cfg.MainPlayers),
			err:     ErrMainRosterIncomplete,
		}
	}
	for _, field := range staffOrder {
		if !cfg.Requires(field) {
			continue
		}
		if strings.TrimSpace(state.staff(field)) == "" {
			return &ValidationError{
				Code:    staffCodes[field],
				Message: staffErrors[field].Error(),
				err:     staffErrors[field],
			}
		}
	}
	return nil
}

func allFilled(players []Player) bool {
	for _, player := range players {
		if !player.Filled() {
			return false
		}
	}
	return true
}
