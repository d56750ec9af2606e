package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"maitred/internal/dialogue"
	"maitred/internal/storage"
)

// retryMessage is what callers see when an external dependency fails;
// internal error detail never leaves the process.
const retryMessage = "Sorry, something went wrong. Please try again."

// TurnHandler processes one dialogue turn. Satisfied by
// *dialogue.Engine; tests substitute stubs.
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn dialogue.Turn) (string, error)
}

// Server exposes the chat, auth and websocket endpoints.
type Server struct {
	router    *gin.Engine
	engine    TurnHandler
	users     storage.UserRepository
	orders    storage.OrderRepository
	jwtSecret []byte
	log       zerolog.Logger
}

// NewServer builds the HTTP surface around the dialogue engine.
func NewServer(engine TurnHandler, users storage.UserRepository, orders storage.OrderRepository, jwtSecret string, logger zerolog.Logger) *Server {
	s := &Server{
		router:    gin.New(),
		engine:    engine,
		users:     users,
		orders:    orders,
		jwtSecret: []byte(jwtSecret),
		log:       logger,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.POST("/signup", s.handleSignup)
		api.POST("/login", s.handleLogin)
		api.POST("/chat/generate", s.handleGenerate)
	}

	authed := s.router.Group("/api", s.authMiddleware())
	{
		authed.GET("/orders/latest", s.handleLatestOrder)
	}
}

// Router returns the Gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// turnRequest is the inbound turn contract: sessionId is required,
// customerId is an optional stable identity.
type turnRequest struct {
	SessionID  string `json:"sessionId"`
	Prompt     string `json:"prompt"`
	CustomerID string `json:"customerId"`
}

// handleGenerate runs one dialogue turn and returns the reply text.
func (s *Server) handleGenerate(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required."})
		return
	}

	reply, err := s.engine.HandleTurn(c.Request.Context(), dialogue.Turn{
		SessionID:  req.SessionID,
		CustomerID: req.CustomerID,
		Utterance:  req.Prompt,
	})
	if err != nil {
		s.log.Error().Err(err).Str("session", req.SessionID).Msg("turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": retryMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// handleLatestOrder returns the authenticated customer's most recent
// finalized order.
func (s *Server) handleLatestOrder(c *gin.Context) {
	customerID := c.GetString(contextCustomerID)
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing customer identity"})
		return
	}

	doc, found, err := s.orders.LatestForCustomer(customerID)
	if err != nil {
		s.log.Error().Err(err).Str("customer", customerID).Msg("latest order lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": retryMessage})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no previous orders"})
		return
	}
	c.JSON(http.StatusOK, doc)
}
