package server

import (
	"time"

	"esports-registration/internal/registration"

	"github.com/rs/zerolog/log"
)

// newController builds the form controller for a new session. Its delayed
// reset pushes the cleared form to every page the session has open.
func (s *Server) newController(sessionID string) *registration.Controller {
	return registration.NewController(
		registration.WithResetDelay(s.cfg.ResetDelay),
		registration.WithResetHook(func(state registration.FormState) {
			log.Info().Str("session_id", sessionID).Str("game", string(state.Game)).Int("pages", s.ws.Count(sessionID)).Msg("form reset")
			s.pushSection(sessionID, state)
		}),
	)
}

func (s *Server) sweepSessions(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopSweep:
			return
		case <-ticker.C:
			for _, id := range s.sessions.Sweep() {
				s.ws.RemoveSession(id)
				s.limiter.Forget(id)
				log.Debug().Str("session_id", id).Msg("session expired")
			}
		}
	}
}
