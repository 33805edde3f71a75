package httpserver

import (
	"crypto/subtle"
	"log"
	"net/http"

	authsvc "storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type federatedRequest struct {
	Provider string `json:"provider" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func signupHandler(logger *log.Logger, svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signup payload"})
			return
		}

		u, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

func loginHandler(logger *log.Logger, svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
			return
		}

		identity, token, err := svc.Login(c.Request.Context(), authsvc.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		setSessionCookie(c, token, svc.SessionTTLSeconds())
		c.JSON(http.StatusOK, sessionResponse{
			Token:     token,
			ExpiresIn: svc.SessionTTLSeconds(),
			UserID:    identity.UserID,
			Email:     identity.Email,
			Role:      identity.Role,
		})
	}
}

// federatedHandler completes a federated sign-in. The provider handshake
// happens on the frontend server, so the endpoint only accepts requests
// that prove they come from it via the shared secret; without that check
// anyone could mint a session for an arbitrary email.
func federatedHandler(logger *log.Logger, svc authService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || subtle.ConstantTimeCompare([]byte(c.GetHeader("X-Federated-Secret")), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req federatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid federated payload"})
			return
		}

		identity, token, err := svc.Login(c.Request.Context(), authsvc.Credentials{
			Provider: req.Provider,
			Email:    req.Email,
			Name:     req.Name,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		setSessionCookie(c, token, svc.SessionTTLSeconds())
		c.JSON(http.StatusOK, sessionResponse{
			Token:     token,
			ExpiresIn: svc.SessionTTLSeconds(),
			UserID:    identity.UserID,
			Email:     identity.Email,
			Role:      identity.Role,
		})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"userId": identity.UserID,
			"email":  identity.Email,
			"role":   identity.Role,
		})
	}
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("session", token, maxAge, "/", "", false, true)
}
