// Package api exposes the assistant and session operations over HTTP and
// websocket transports.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parolaccia/internal/archive"
	"parolaccia/internal/models"
	"parolaccia/internal/monitoring"
	"parolaccia/internal/session"
)

// Server wires the HTTP surface to the core packages
type Server struct {
	Router   *gin.Engine
	menu     *models.Menu
	sessions *session.Manager
	archive  *archive.Store
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

// NewServer creates the API server and registers its routes
func NewServer(menu *models.Menu, orders *archive.Store, metrics *monitoring.Metrics, log *zap.Logger) *Server {
	s := &Server{
		Router:   gin.Default(),
		menu:     menu,
		sessions: session.NewManager(),
		archive:  orders,
		metrics:  metrics,
		log:      log,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.Router.GET("/ws", s.handleChatSocket)

	v1 := s.Router.Group("/api/v1")
	{
		v1.GET("/menu", s.handleGetMenu)
		v1.POST("/assistant", s.handleAssistantTurn)
		v1.GET("/orders", s.handleListOrders)

		v1.POST("/sessions", s.handleCreateSession)
		v1.POST("/sessions/restore", s.handleRestoreSession)
		v1.GET("/sessions/:id", s.handleGetSession)
		v1.DELETE("/sessions/:id", s.handleCloseSession)
		v1.POST("/sessions/:id/chat", s.handleSessionChat)
		v1.POST("/sessions/:id/confirm", s.handleConfirmOrder)

		v1.POST("/sessions/:id/cart/items", s.handleAddItem)
		v1.DELETE("/sessions/:id/cart/items/:sku", s.handleRemoveItem)
		v1.PUT("/sessions/:id/cart/items/:sku/qty", s.handleUpdateQty)
		v1.PUT("/sessions/:id/cart/items/:sku/notes", s.handleUpdateNotes)
		v1.DELETE("/sessions/:id/cart", s.handleClearCart)
	}
}

// lookupSession resolves the :id path param, answering 404 on a miss
func (s *Server) lookupSession(c *gin.Context) (*session.Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}
