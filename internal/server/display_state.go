package server

import (
	"esports-registration/internal/registration"
	"esports-registration/internal/web"
)

var staffKeys = map[registration.StaffField]string{
	registration.StaffManager:    "manager",
	registration.StaffTeamLeader: "team_leader",
	registration.StaffCoach:      "coach",
}

var staffLabels = map[registration.StaffField]string{
	registration.StaffManager:    "Manager",
	registration.StaffTeamLeader: "Team leader",
	registration.StaffCoach:      "Coach",
}

// buildFormView maps a session's form state to what the page renders.
func buildFormView(state registration.FormState, errMsg string) web.FormView {
	cfg, _ := registration.ConfigFor(state.Game)
	view := web.FormView{
		Game:          string(state.Game),
		TeamName:      state.TeamName,
		Submitted:     state.Submitted,
		Error:         errMsg,
		MaxNameLength: maxNameLength,
	}
	for _, game := range registration.Games() {
		view.Games = append(view.Games, web.GameOption{
			Name:     string(game),
			Selected: game == state.Game,
		})
	}
	view.Players = buildSlots(state.Players, "Player")
	view.Reserves = buildSlots(state.Reserves, "Reserve")

	values := map[registration.StaffField]string{
		registration.StaffManager:    state.Manager,
		registration.StaffTeamLeader: state.TeamLeader,
		registration.StaffCoach:      state.Coach,
	}
	for _, field := range registration.StaffFields() {
		view.Staff = append(view.Staff, web.StaffView{
			Key:      staffKeys[field],
			Label:    staffLabels[field],
			Value:    values[field],
			Required: cfg.Requires(field),
		})
	}

	view.Registrations = buildRegistrationItems(state.Registrations)
	return view
}

func buildSlots(players []registration.Player, label string) []web.SlotView {
	slots := make([]web.SlotView, 0, len(players))
	for i, player := range players {
		slots = append(slots, web.SlotView{
			Label: label + " " + itoa(i+1),
			Name:  player.Name,
		})
	}
	return slots
}

func buildRegistrationItems(list []registration.TeamRegistration) []web.RegistrationItem {
	items := make([]web.RegistrationItem, 0, len(list))
	for _, reg := range list {
		items = append(items, web.RegistrationItem{
			Seq:        reg.Seq,
			TeamName:   reg.TeamName,
			Game:       string(reg.Game),
			Players:    playerNames(reg.Players),
			Reserves:   playerNames(reg.Reserves),
			Manager:    deref(reg.Manager),
			TeamLeader: deref(reg.TeamLeader),
			Coach:      deref(reg.Coach),
		})
	}
	return items
}

func playerNames(players []registration.Player) []string {
	names := make([]string, 0, len(players))
	for _, player := range players {
		names = append(names, player.Name)
	}
	return names
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
