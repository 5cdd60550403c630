package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient talks to the Parolaccia assistant API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("PAROLACCIA_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// Session is the server-side ordering session handle
type Session struct {
	ID           string `json:"id"`
	MesaID       string `json:"mesaId"`
	Comensales   int    `json:"comensales"`
	PrimerPedido bool   `json:"primerPedido"`
	Greeting     string `json:"greeting"`
}

// TurnResult mirrors the assistant's turn response
type TurnResult struct {
	AssistantMessage    string `json:"assistantMessage"`
	RequireConfirmation bool   `json:"requireConfirmation"`
}

// Order is a confirmed, archived order
type Order struct {
	ID       uint    `json:"id"`
	MesaID   string  `json:"mesaId"`
	Total    float64 `json:"total"`
	Items    string  `json:"items"`
	Currency string  `json:"currency"`
}

// CartState is the session cart view
type CartState struct {
	Cart []struct {
		SKU   string  `json:"sku"`
		Name  string  `json:"name"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
		Notes string  `json:"notes"`
	} `json:"cart"`
	Count          int    `json:"count"`
	FormattedTotal string `json:"formattedTotal"`
}

func (c *ApiClient) postJSON(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateSession opens an ordering session for a table
func (c *ApiClient) CreateSession(mesaID string, comensales int) (*Session, error) {
	var sess Session
	err := c.postJSON("/api/v1/sessions", map[string]interface{}{
		"mesaId":     mesaID,
		"comensales": comensales,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Chat sends one utterance and returns the assistant's turn result
func (c *ApiClient) Chat(sessionID, message string) (*TurnResult, error) {
	var result TurnResult
	err := c.postJSON("/api/v1/sessions/"+sessionID+"/chat", map[string]string{
		"message": message,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Cart fetches the session cart state
func (c *ApiClient) Cart(sessionID string) (*CartState, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/sessions/" + sessionID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	var state CartState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Confirm archives the current order
func (c *ApiClient) Confirm(sessionID string) (*Order, error) {
	var order Order
	err := c.postJSON("/api/v1/sessions/"+sessionID+"/confirm", map[string]string{}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
