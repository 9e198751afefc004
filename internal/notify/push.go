package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PushSender envía la notificación nativa. Enabled refleja si el permiso de
// push fue otorgado (URL de gateway configurada); cuando devuelve false el
// envío se omite en silencio.
type PushSender interface {
	Enabled() bool
	Send(ctx context.Context, item Item) error
}

// HTTPPushSender implementación sobre un gateway HTTP de push (fire-and-forget).
type HTTPPushSender struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPPushSender construye el sender. url vacía = push deshabilitado.
func NewHTTPPushSender(url, token string) *HTTPPushSender {
	return &HTTPPushSender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled indica si hay gateway configurado.
func (s *HTTPPushSender) Enabled() bool {
	return s.url != ""
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Tag   string `json:"tag,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Send publica la notificación en el gateway. El resultado no se reintenta.
func (s *HTTPPushSender) Send(ctx context.Context, item Item) error {
	payload := pushPayload{
		Title: item.Title,
		Body:  item.Options.Body,
		Tag:   item.Options.Tag,
		URL:   item.Options.URL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("armar request push: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar push: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway push respondió %d", resp.StatusCode)
	}
	return nil
}
