package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

// formFields are the editable inputs posted by both form actions.
type formFields struct {
	CurrentGame string   `form:"current_game" binding:"omitempty,gamekind"`
	TeamName    string   `form:"team_name" binding:"utf8name,name"`
	Players     []string `form:"players" binding:"dive,utf8name,name"`
	Reserves    []string `form:"reserves" binding:"dive,utf8name,name"`
	Manager     string   `form:"manager" binding:"utf8name,name"`
	TeamLeader  string   `form:"team_leader" binding:"utf8name,name"`
	Coach       string   `form:"coach" binding:"utf8name,name"`
}

type selectGameRequest struct {
	formFields
	Game string `form:"game" binding:"required,gamekind"`
}

type registerRequest struct {
	formFields
}

var tooLong = fmt.Sprintf("names must be %d characters or fewer", maxNameLength)

const badText = "names must be valid text"

var nameMessages = map[string]string{
	"name":     tooLong,
	"utf8name": badText,
}

var formMessages = bindMessages{
	"Game": {
		"required": "choose a game",
		"gamekind": "unknown game",
	},
	"CurrentGame": {"gamekind": "unknown game"},
	"TeamName":    nameMessages,
	"Players":     nameMessages,
	"Reserves":    nameMessages,
	"Manager":     nameMessages,
	"TeamLeader":  nameMessages,
	"Coach":       nameMessages,
}

// bindForm binds the posted form into req and returns a user-facing message
// when it fails.
func bindForm(c *gin.Context, req any, messages bindMessages, fallback string) (string, bool) {
	if err := c.ShouldBind(req); err != nil {
		return resolveBindError(err, messages, fallback), false
	}
	return "", true
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			field, _, _ := strings.Cut(verr.StructField(), "[")
			if fieldMsgs, ok := messages[field]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}
