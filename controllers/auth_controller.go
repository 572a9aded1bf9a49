package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/auth"
	"github.com/phillip/autoclub-go/middleware"
	"github.com/phillip/autoclub-go/queries"
)

// SessionCookie describes the cookie the session token is stored in.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) set(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, maxAge, "/", "", sc.Secure, true)
}

// ---------------- SIGNUP ----------------
func Signup(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badBody(c)
			return
		}

		user, err := authn.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user_id": user.ID.Hex(),
		})
	}
}

// ---------------- LOGIN ----------------

// Login verifies credentials, sets the session cookie and also returns the
// token for clients that send it as a bearer header.
func Login(authn *auth.Authenticator, sm *auth.SessionManager, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" form:"email"`
			Password string `json:"password" form:"password"`
		}
		if err := c.ShouldBind(&input); err != nil {
			badBody(c)
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), input.Email, input.Password)
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		case err != nil:
			respondError(c, err)
			return
		}

		token, session, err := sm.Issue(user)
		if err != nil {
			respondError(c, err)
			return
		}
		cookie.set(c, token, int(sm.TTL().Seconds()))

		c.JSON(http.StatusOK, gin.H{
			"user":    session,
			"token":   token,
			"expires": session.ExpiresAt,
		})
	}
}

// ---------------- LOGOUT ----------------
func Logout(cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie.set(c, "", -1)
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// ---------------- SESSION ----------------

// GetSession returns the current session refreshed from the stored user, or
// an empty object when the caller is anonymous or the account is gone.
func GetSession(q *queries.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := middleware.CurrentSession(c)
		if s == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		user, err := q.UserByID(c.Request.Context(), s.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		fresh := *s
		fresh.Name = user.Name
		fresh.Email = user.Email
		fresh.Role = user.Role
		fresh.Image = user.Image
		c.JSON(http.StatusOK, gin.H{"user": fresh, "expires": fresh.ExpiresAt})
	}
}
