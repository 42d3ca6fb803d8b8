package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/noshnavigator/nosh-cli/internal/gateway/completion"
	"github.com/noshnavigator/nosh-cli/internal/server/auth"
)

// Completer is the upstream the chat proxy forwards conversations to.
type Completer interface {
	Complete(ctx context.Context, messages []completion.Message) (string, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	Auth      *auth.Service
	Tokens    *auth.TokenManager
	Completer Completer
}

// The front end is served from localhost; mirror that in CORS.
var localOriginPattern = regexp.MustCompile(`^http://(localhost|127\.0\.0\.1)(:\d+)?$`)

func buildRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return localOriginPattern.MatchString(origin)
		},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", healthHandler)

	api := router.Group("/api")
	{
		api.POST("/register", registerHandler(deps))
		api.POST("/login", loginHandler(deps))
		api.GET("/me", meHandler(deps))
		api.POST("/chat", chatHandler(deps))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func userPayload(user *auth.User) gin.H {
	payload := gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"email":    user.Email,
	}
	if !user.CreatedAt.IsZero() {
		payload["created_at"] = user.CreatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}

// authStatus maps service sentinel errors to the original endpoint codes.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrUsernameTaken), errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

func registerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrInvalidInput.Error()})
			return
		}

		user, err := deps.Auth.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
		if err != nil {
			status, code := authStatus(err)
			c.JSON(status, gin.H{"error": code})
			return
		}

		token, err := deps.Tokens.Issue(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userPayload(user)})
	}
}

func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrInvalidInput.Error()})
			return
		}

		user, err := deps.Auth.Login(c.Request.Context(), req.Login, req.Password)
		if err != nil {
			status, code := authStatus(err)
			c.JSON(status, gin.H{"error": code})
			return
		}

		token, err := deps.Tokens.Issue(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userPayload(user)})
	}
}

func meHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"auth": false})
			return
		}

		userID, err := deps.Tokens.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"auth": false})
			return
		}

		user, err := deps.Auth.Lookup(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"auth": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"auth": true, "user": userPayload(user)})
	}
}

func chatHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Messages []completion.Message `json:"messages"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messages must be an array"})
			return
		}

		text, err := deps.Completer.Complete(c.Request.Context(), req.Messages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "proxy error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": text})
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
