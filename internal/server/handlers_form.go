package server

import (
	"errors"
	"net/http"

	"esports-registration/internal/registration"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const staleFormMessage = "game selection changed, review the form and submit again"

// requireSession returns the caller's existing session. Only the page load
// creates sessions, so a post without one is sent back to the page.
func (s *Server) requireSession(c *gin.Context) (*formSession, bool) {
	sess, ok := s.sessions.Lookup(c)
	if !ok {
		log.Debug().Str("path", c.Request.URL.Path).Msg("post without session")
		c.Redirect(http.StatusSeeOther, "/")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSelectGame(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok || !s.enforceRateLimit(c, sess.id, "select_game") {
		return
	}
	var req selectGameRequest
	if msg, ok := bindForm(c, &req, formMessages, "invalid form"); !ok {
		s.renderPage(c, http.StatusBadRequest, sess, msg)
		return
	}
	game, err := registration.ParseGameKind(req.Game)
	if err != nil {
		s.renderEditError(c, sess, err)
		return
	}
	selectGame := registration.SelectGame{Game: game}
	_, err = sess.controller.Apply(append(editActions(req.formFields), selectGame)...)
	if errors.Is(err, registration.ErrStaleForm) {
		// The edits belong to another game's form; switch anyway.
		_, err = sess.controller.Apply(selectGame)
	}
	if err != nil {
		s.renderEditError(c, sess, err)
		return
	}
	log.Debug().Str("session_id", sess.id).Str("game", req.Game).Msg("game selected")
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleRegister(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok || !s.enforceRateLimit(c, sess.id, "register") {
		return
	}
	var req registerRequest
	if msg, ok := bindForm(c, &req, formMessages, "invalid form"); !ok {
		s.renderPage(c, http.StatusBadRequest, sess, msg)
		return
	}

	result, err := sess.controller.Apply(append(editActions(req.formFields), registration.Submit{})...)
	if err != nil {
		var verr *registration.ValidationError
		if errors.As(err, &verr) {
			log.Info().Str("session_id", sess.id).Str("code", verr.Code).Msg("registration rejected")
			s.renderPage(c, http.StatusUnprocessableEntity, sess, verr.Message)
			return
		}
		s.renderEditError(c, sess, err)
		return
	}
	record := result.Registration
	log.Info().
		Str("session_id", sess.id).
		Int("seq", record.Seq).
		Str("game", string(record.Game)).
		Int("players", len(record.Players)).
		Int("reserves", len(record.Reserves)).
		Msg("registration accepted")
	s.pushSection(sess.id, sess.controller.Snapshot())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) renderEditError(c *gin.Context, sess *formSession, err error) {
	switch {
	case errors.Is(err, registration.ErrStaleForm):
		s.renderPage(c, http.StatusConflict, sess, staleFormMessage)
	case errors.Is(err, registration.ErrSlotOutOfRange), errors.Is(err, registration.ErrUnknownGame):
		s.renderPage(c, http.StatusBadRequest, sess, "invalid form")
	case errors.Is(err, registration.ErrControllerClosed):
		s.renderPage(c, http.StatusGone, sess, "session expired, reload the page")
	default:
		log.Error().Err(err).Str("session_id", sess.id).Msg("form edit failed")
		s.renderPage(c, http.StatusInternalServerError, sess, "something went wrong")
	}
}

// editActions turns the posted inputs into controller actions. A form that
// names the game it was rendered for is checked against the current
// selection first, since its slot lists only line up with that game.
func editActions(fields formFields) []registration.Action {
	actions := make([]registration.Action, 0, 5+len(fields.Players)+len(fields.Reserves))
	if fields.CurrentGame != "" {
		actions = append(actions, registration.ExpectGame{Game: registration.GameKind(fields.CurrentGame)})
	}
	actions = append(actions,
		registration.SetTeamName{Value: fields.TeamName},
		registration.SetStaff{Field: registration.StaffManager, Value: fields.Manager},
		registration.SetStaff{Field: registration.StaffTeamLeader, Value: fields.TeamLeader},
		registration.SetStaff{Field: registration.StaffCoach, Value: fields.Coach},
	)
	for i, name := range fields.Players {
		actions = append(actions, registration.SetPlayerName{Index: i, Value: name})
	}
	for i, name := range fields.Reserves {
		actions = append(actions, registration.SetReserveName{Index: i, Value: name})
	}
	return actions
}
