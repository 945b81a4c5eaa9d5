package generate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"codeberg.org/wexar/server/internal/generator"
)

const maxCurrentCodeLength = 500_000

// request body for code generation
type Request struct {
	Prompt              string              `json:"prompt"`
	CurrentCode         string              `json:"currentCode,omitempty"`
	ConversationHistory []generator.Message `json:"conversationHistory,omitempty"`
	SessionID           string              `json:"sessionId,omitempty"`
}

// successful generation
type Response struct {
	Code           string `json:"code"`
	Explanation    string `json:"explanation"`
	Conversational bool   `json:"conversational"`
	SessionID      string `json:"sessionId,omitempty"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt,
			validation.Required,
			validation.RuneLength(generator.MinPromptLength, generator.MaxPromptLength),
			validation.By(trimmedMinLength(generator.MinPromptLength)),
		),
		validation.Field(&r.CurrentCode, validation.RuneLength(0, maxCurrentCodeLength)),
		validation.Field(&r.ConversationHistory, validation.Each(validation.By(validateMessage))),
		validation.Field(&r.SessionID, validation.By(validateUUID)),
	)
}

func trimmedMinLength(min int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len([]rune(strings.TrimSpace(s))) < min {
			return validation.NewError("validation_prompt_blank", "must contain at least 3 non-space characters")
		}

		return nil
	}
}

func validateMessage(value any) error {
	msg, ok := value.(generator.Message)
	if !ok {
		return validation.NewError("validation_message_type", "must be a message")
	}

	return validation.ValidateStruct(&msg,
		validation.Field(&msg.Role,
			validation.Required,
			validation.In(generator.RoleUser, generator.RoleAssistant, generator.RoleSystem),
		),
	)
}

func validateUUID(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_session_id", "must be a valid session id")
	}

	return nil
}
