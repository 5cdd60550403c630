package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parolaccia/internal/archive"
	"parolaccia/internal/assistant"
	"parolaccia/internal/models"
	"parolaccia/internal/monitoring"
)

func testMenu() *models.Menu {
	menu := &models.Menu{
		Currency: "ARS",
		Categories: []models.Category{
			{
				ID:   "bebidas",
				Name: "Bebidas",
				Items: []models.MenuItem{
					{SKU: "LIM01", Name: "Limonada", Price: 1500},
				},
			},
			{
				ID:   "carni",
				Name: "Carni",
				Items: []models.MenuItem{
					{SKU: "CAR03", Name: "Milanesa napolitana", Price: 9200},
				},
			},
		},
	}
	menu.ResolveKinds()
	return menu
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders, err := archive.Open("sqlite3", filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { orders.Close() })

	return NewServer(testMenu(), orders, monitoring.NewMetrics(), zap.NewNop())
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetMenu(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var menu models.Menu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, "ARS", menu.Currency)
	assert.Len(t, menu.Categories, 2)
}

func TestStatelessAssistantTurn(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/v1/assistant", TurnRequest{
		Message:    "dos limonadas",
		TableID:    "12",
		PartySize:  2,
		FirstOrder: false,
		Cart: []models.LineItem{
			{SKU: "CAR03", Name: "Milanesa napolitana", Qty: 2, Price: 9200, CategoryID: "carni"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result assistant.TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.CartOps, 1)
	assert.Equal(t, models.OpAdd, result.CartOps[0].Type)
	assert.Equal(t, "LIM01", result.CartOps[0].SKU)
	assert.Equal(t, 2, result.CartOps[0].Qty)
	assert.Equal(t, "Agregué 2 Limonada. ¿Algo más?", result.AssistantMessage)
}

func TestAssistantTurnRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/sessions", gin.H{"mesaId": "12", "comensales": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID       string `json:"id"`
		Greeting string `json:"greeting"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Greeting)
	return resp.ID
}

func TestSessionChatAppliesOps(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/chat", ChatRequest{Message: "dos limonadas"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state struct {
		Cart  []models.LineItem `json:"cart"`
		Count int               `json:"count"`
		Total float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.Cart, 1)
	assert.Equal(t, "LIM01", state.Cart[0].SKU)
	assert.Equal(t, 2, state.Count)
	assert.Equal(t, 3000.0, state.Total)
}

func TestConfirmOrderArchivesAndResets(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/chat", ChatRequest{Message: "dos limonadas"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/confirm", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var order archive.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "12", order.TableID)
	assert.Equal(t, 3000.0, order.Total)
	assert.Equal(t, "ARS", order.Currency)

	// the cart resets and the first-order flag flips off
	w = doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	var state struct {
		Count        int  `json:"count"`
		PrimerPedido bool `json:"primerPedido"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 0, state.Count)
	assert.False(t, state.PrimerPedido)

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []archive.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestCartEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/cart/items", gin.H{"sku": "LIM01", "qty": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPut, "/api/v1/sessions/"+id+"/cart/items/LIM01/notes", gin.H{"notes": "sin hielo"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+id+"/cart/items/LIM01?qty=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart []models.LineItem `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, 2, resp.Cart[0].Qty)
	assert.Equal(t, "sin hielo", resp.Cart[0].Notes)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+id+"/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUnknownSession(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/sessions/nope/chat", ChatRequest{Message: "hola"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddUnknownSKU(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)
	w := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/cart/items", gin.H{"sku": "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
