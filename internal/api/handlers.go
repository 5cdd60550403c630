package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parolaccia/internal/assistant"
	"parolaccia/internal/cart"
	"parolaccia/internal/models"
	"parolaccia/internal/money"
	"parolaccia/internal/session"
)

// TurnRequest is the stateless assistant payload: the client supplies its
// own cart snapshot and session flags on every turn.
type TurnRequest struct {
	Message    string            `json:"message" binding:"required"`
	Locale     string            `json:"locale"`
	TableID    string            `json:"mesaId"`
	PartySize  int               `json:"comensales"`
	FirstOrder bool              `json:"primerPedido"`
	Cart       []models.LineItem `json:"cart"`
	Menu       *models.Menu      `json:"menu"`
}

// ChatRequest is the stateful per-session chat payload
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Locale  string `json:"locale"`
}

func (s *Server) handleGetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.menu)
}

// handleAssistantTurn computes one turn against a client-supplied cart
// snapshot. The ops are returned for the client to apply; nothing is
// mutated server-side.
func (s *Server) handleAssistantTurn(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := req.Menu
	if menu == nil {
		menu = s.menu
	} else {
		menu.ResolveKinds()
	}
	if req.PartySize < 1 {
		req.PartySize = 1
	}

	ctx := &assistant.TurnContext{
		TableID:    req.TableID,
		PartySize:  req.PartySize,
		FirstOrder: req.FirstOrder,
		Locale:     req.Locale,
		Cart:       cart.FromItems(req.Cart),
		Menu:       menu,
	}

	start := time.Now()
	result, intent := assistant.ProcessTurnIntent(req.Message, ctx)
	lang := assistant.DetectLanguage(req.Locale, req.Message)
	s.metrics.ObserveTurn(string(intent), string(lang), time.Since(start))

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req struct {
		TableID   string `json:"mesaId" binding:"required"`
		PartySize int    `json:"comensales"`
		Locale    string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := s.sessions.Create(req.TableID, req.PartySize)
	s.metrics.SetSessionsOpen(s.sessions.Count())
	s.log.Info("session opened",
		zap.String("session", sess.ID),
		zap.String("mesa", sess.TableID),
		zap.Int("comensales", sess.PartySize))

	lang := assistant.DetectLanguage(req.Locale, "")
	c.JSON(http.StatusCreated, gin.H{
		"id":           sess.ID,
		"mesaId":       sess.TableID,
		"comensales":   sess.PartySize,
		"primerPedido": sess.FirstOrder,
		"greeting":     assistant.Greeting(lang),
	})
}

func (s *Server) handleRestoreSession(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := s.sessions.Restore(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session snapshot"})
		return
	}
	s.metrics.SetSessionsOpen(s.sessions.Count())
	c.JSON(http.StatusOK, gin.H{"id": sess.ID})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	lang := assistant.DetectLanguage(c.Query("locale"), "")
	c.JSON(http.StatusOK, gin.H{
		"id":             sess.ID,
		"mesaId":         sess.TableID,
		"comensales":     sess.PartySize,
		"primerPedido":   sess.FirstOrder,
		"cart":           sess.Cart.Items(),
		"count":          sess.Cart.Count(),
		"total":          sess.Cart.Total(),
		"formattedTotal": money.FormatARS(sess.Cart.Total(), string(lang)),
	})
}

func (s *Server) handleCloseSession(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	s.sessions.Close(sess.ID)
	s.metrics.SetSessionsOpen(s.sessions.Count())
	c.Status(http.StatusNoContent)
}

// handleSessionChat runs one turn against the server-held session cart and
// applies the resulting ops before responding.
func (s *Server) handleSessionChat(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Lock()
	defer sess.Unlock()
	result := s.runTurn(sess, req.Message, req.Locale)
	c.JSON(http.StatusOK, result)
}

// runTurn computes a turn for a locked session and applies its cart ops
func (s *Server) runTurn(sess *session.Session, message, locale string) assistant.TurnResult {
	ctx := &assistant.TurnContext{
		TableID:    sess.TableID,
		PartySize:  sess.PartySize,
		FirstOrder: sess.FirstOrder,
		Locale:     locale,
		Cart:       sess.Cart,
		Menu:       s.menu,
	}

	start := time.Now()
	result, intent := assistant.ProcessTurnIntent(message, ctx)
	lang := assistant.DetectLanguage(locale, message)
	s.metrics.ObserveTurn(string(intent), string(lang), time.Since(start))

	sess.Cart.Apply(result.CartOps, s.menu)
	for _, op := range result.CartOps {
		s.metrics.RecordCartOp(string(op.Type))
	}
	return result
}

func (s *Server) handleConfirmOrder(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	order, err := s.archive.Save(sess.ID, sess.TableID, sess.PartySize,
		sess.Cart.Items(), sess.Cart.Total(), s.menu.Currency)
	if err != nil {
		s.log.Error("failed to archive order", zap.String("session", sess.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive order"})
		return
	}
	s.metrics.RecordOrderConfirmed()
	s.log.Info("order confirmed",
		zap.String("session", sess.ID),
		zap.String("mesa", sess.TableID),
		zap.Float64("total", order.Total))

	sess.FirstOrder = false
	sess.Cart.Clear()
	c.JSON(http.StatusCreated, order)
}

func (s *Server) handleListOrders(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	orders, err := s.archive.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) handleAddItem(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req struct {
		SKU   string `json:"sku" binding:"required"`
		Qty   int    `json:"qty"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, cat := s.menu.FindBySKU(req.SKU)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sku"})
		return
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Cart.Add(models.LineItem{
		SKU:        item.SKU,
		Name:       item.Name,
		Qty:        req.Qty,
		Price:      item.Price,
		Notes:      req.Notes,
		CategoryID: cat.ID,
	})
	s.metrics.RecordCartOp(string(models.OpAdd))
	c.JSON(http.StatusOK, gin.H{"cart": sess.Cart.Items(), "count": sess.Cart.Count()})
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	qty := 0
	if raw := c.Query("qty"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			qty = n
		}
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Cart.Remove(c.Param("sku"), qty)
	s.metrics.RecordCartOp(string(models.OpRemove))
	c.JSON(http.StatusOK, gin.H{"cart": sess.Cart.Items(), "count": sess.Cart.Count()})
}

func (s *Server) handleUpdateQty(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req struct {
		Qty int `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Cart.UpdateQty(c.Param("sku"), req.Qty)
	c.JSON(http.StatusOK, gin.H{"cart": sess.Cart.Items()})
}

func (s *Server) handleUpdateNotes(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Cart.UpdateNotes(c.Param("sku"), req.Notes)
	s.metrics.RecordCartOp(string(models.OpUpdateNotes))
	c.JSON(http.StatusOK, gin.H{"cart": sess.Cart.Items()})
}

func (s *Server) handleClearCart(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	sess.Cart.Clear()
	c.Status(http.StatusNoContent)
}
