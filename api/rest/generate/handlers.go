package generate

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/auth"
	"codeberg.org/wexar/server/internal/errors"
	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/logger"
	"codeberg.org/wexar/server/internal/sessions"
)

type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

type SessionStore interface {
	Get(sessionID string) (*sessions.Session, error)
	RecordTurn(sessionID, prompt string, result generator.Result) (*sessions.Session, error)
}

// creates a handler for website generation
func Handler(gen Generator, sessionStore SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if err := req.Validate(); err != nil {
			errors.ValidationError(c, err)
			return
		}

		log := logger.FromContext(c.Request.Context())
		userID, _ := auth.GetUserID(c)

		history := req.ConversationHistory
		currentCode := req.CurrentCode

		// a stored session fills in whatever the request left out
		if req.SessionID != "" {
			session, ok := ownedSession(c, sessionStore, req.SessionID, userID)
			if !ok {
				return
			}

			if history == nil {
				history = session.Messages
			}

			if currentCode == "" {
				currentCode = session.CurrentCode
			}
		}

		genReq := generator.NewRequest(logger.RequestID(c), req.Prompt, currentCode, history)

		result, err := gen.Generate(c.Request.Context(), genReq)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		if req.SessionID != "" {
			if _, err := sessionStore.RecordTurn(req.SessionID, req.Prompt, *result); err != nil {
				log.Warn("failed to record session turn",
					"session_id", req.SessionID,
					"error", err,
				)
			}
		}

		c.JSON(http.StatusOK, Response{
			Code:           result.Code,
			Explanation:    result.Explanation,
			Conversational: result.Conversational,
			SessionID:      req.SessionID,
		})
	}
}

// loads a session and checks the caller owns it. sessions owned by
// someone else look the same as missing ones.
func ownedSession(c *gin.Context, store SessionStore, sessionID, userID string) (*sessions.Session, bool) {
	session, err := store.Get(sessionID)
	if err != nil {
		if stderrors.Is(err, sessions.ErrSessionNotFound) || stderrors.Is(err, sessions.ErrSessionExpired) {
			errors.SessionNotFound(c)
			return nil, false
		}

		errors.InternalError(c, "failed to load session", err)
		return nil, false
	}

	if userID == "" {
		userID = sessions.AnonymousUser
	}

	if session.UserID != userID {
		errors.SessionNotFound(c)
		return nil, false
	}

	return session, true
}
