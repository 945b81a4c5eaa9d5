package sessions

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/sessions"
)

const (
	maxTitleLength   = 200
	maxContentLength = 20_000
)

type CreateSessionRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
}

func (r CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLength)),
		validation.Field(&r.ProjectID, validation.Length(0, 128)),
	)
}

type AddMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (r AddMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required,
			validation.In(generator.RoleUser, generator.RoleAssistant),
		),
		validation.Field(&r.Content,
			validation.Required,
			validation.Length(1, maxContentLength),
		),
	)
}

type ListSessionsResponse struct {
	Sessions []sessions.Summary `json:"sessions"`
}
