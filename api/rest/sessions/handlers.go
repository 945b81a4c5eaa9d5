package sessions

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/auth"
	"codeberg.org/wexar/server/internal/errors"
	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/sessions"
)

// creates a session owned by the caller
func CreateSessionHandler(mgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				errors.BadRequest(c, "invalid request body", err)
				return
			}
		}

		if err := req.Validate(); err != nil {
			errors.ValidationError(c, err)
			return
		}

		userID, _ := auth.GetUserID(c)

		session, err := mgr.Create(userID, req.Title, req.ProjectID)
		if err != nil {
			if stderrors.Is(err, sessions.ErrCapacityReached) {
				errors.TooManyRequests(c, "session limit reached, try again later", 0)
				return
			}

			errors.InternalError(c, "failed to create session", err)
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

// lists the caller's sessions
func ListSessionsHandler(mgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		c.JSON(http.StatusOK, ListSessionsResponse{
			Sessions: mgr.ListByUser(userID),
		})
	}
}

// returns a session with its messages and current code
func GetSessionHandler(mgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := loadOwned(c, mgr)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// appends a message to a session
func AddMessageHandler(mgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := loadOwned(c, mgr)
		if !ok {
			return
		}

		var req AddMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if err := req.Validate(); err != nil {
			errors.ValidationError(c, err)
			return
		}

		updated, err := mgr.AddMessage(session.ID, generator.Message{Role: req.Role, Content: req.Content})
		if err != nil {
			if isMissing(err) {
				errors.SessionNotFound(c)
				return
			}

			errors.InternalError(c, "failed to add message", err)
			return
		}

		c.JSON(http.StatusCreated, updated)
	}
}

// deletes a session
func DeleteSessionHandler(mgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := loadOwned(c, mgr)
		if !ok {
			return
		}

		mgr.Delete(session.ID)
		c.Status(http.StatusNoContent)
	}
}

// sessions owned by someone else look the same as missing ones
func loadOwned(c *gin.Context, mgr *sessions.Manager) (*sessions.Session, bool) {
	sessionID, ok := errors.ValidatePathUUID(c, "id")
	if !ok {
		return nil, false
	}

	session, err := mgr.Get(sessionID)
	if err != nil {
		if isMissing(err) {
			errors.SessionNotFound(c)
			return nil, false
		}

		errors.InternalError(c, "failed to load session", err)
		return nil, false
	}

	userID, _ := auth.GetUserID(c)
	if userID == "" {
		userID = sessions.AnonymousUser
	}

	if session.UserID != userID {
		errors.SessionNotFound(c)
		return nil, false
	}

	return session, true
}

func isMissing(err error) bool {
	return stderrors.Is(err, sessions.ErrSessionNotFound) || stderrors.Is(err, sessions.ErrSessionExpired)
}
