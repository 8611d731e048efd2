package server

import (
	"bytes"
	"context"

	"esports-registration/internal/web"
)

func (s *Server) renderSectionHTML(view web.FormView) string {
	var buf bytes.Buffer
	if err := web.RegistrationSection(view).Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}
