package web

type GameOption struct {
	Name     string
	Selected bool
}

type SlotView struct {
	Label string
	Name  string
}

type StaffView struct {
	Key      string
	Label    string
	Value    string
	Required bool
}

// FormView is everything the registration page renders for one session.
type FormView struct {
	Game          string
	Games         []GameOption
	TeamName      string
	Players       []SlotView
	Reserves      []SlotView
	Staff         []StaffView
	Submitted     bool
	Error         string
	MaxNameLength int
	Registrations []RegistrationItem
}

type RegistrationItem struct {
	Seq        int
	TeamName   string
	Game       string
	Players    []string
	Reserves   []string
	Manager    string
	TeamLeader string
	Coach      string
}
