package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const contextCustomerID = "customerId"

// tokenTTL bounds how long an issued token stays valid.
const tokenTTL = 24 * time.Hour

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignup registers a new account and issues a stable customer id.
func (s *Server) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required."})
		return
	}
	if !validPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Password must be at least 8 characters long and include at least one special character and one number.",
		})
		return
	}

	if _, exists, err := s.users.ByEmail(req.Email); err != nil {
		s.log.Error().Err(err).Msg("signup lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	} else if exists {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("password hash failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	customerID := "cus_" + strings.Split(uuid.NewString(), "-")[0]
	if err := s.users.Create(req.Email, string(hash), customerID); err != nil {
		s.log.Error().Err(err).Msg("signup insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "User created successfully.",
		"customerId": customerID,
	})
}

// handleLogin verifies credentials and issues a JWT carrying the
// customer id.
func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required."})
		return
	}

	user, exists, err := s.users.ByEmail(req.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}
	if !exists || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials."})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.Email,
		"customerId": user.CustomerID,
		"exp":        time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Login successful.",
		"customerId": user.CustomerID,
		"token":      signed,
	})
}

// authMiddleware validates the bearer token and exposes the customer id
// to downstream handlers.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if customerID, ok := claims["customerId"].(string); ok {
				c.Set(contextCustomerID, customerID)
			}
		}
		c.Next()
	}
}

// validPassword enforces the signup policy: at least 8 characters, one
// digit and one special character.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasDigit := strings.ContainsAny(password, "0123456789")
	hasSpecial := strings.ContainsAny(password, "!@#$%^&*")
	return hasDigit && hasSpecial
}
