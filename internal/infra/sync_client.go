package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"heladopos/internal/dto"
)

// SyncClient empuja el payload de sincronización al servidor central por HTTP.
// Cualquier respuesta 2xx cuenta como confirmación; todo lo demás (timeout,
// red caída, 4xx/5xx) es fallo y el llamador no debe marcar nada.
type SyncClient struct {
	serverURL  string
	httpClient *http.Client
}

func NewSyncClient(serverURL string, timeout time.Duration) *SyncClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SyncClient{
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *SyncClient) Enviar(ctx context.Context, payload *dto.SyncPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sync: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/sync", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sync: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sync: servidor inalcanzable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sync: el servidor respondió %d", resp.StatusCode)
	}
	return nil
}

// Disponible hace un chequeo liviano de conectividad contra el servidor antes
// de intentar una sincronización completa.
func (c *SyncClient) Disponible(ctx context.Context) bool {
	if c.serverURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.serverURL+"/api/sync", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
