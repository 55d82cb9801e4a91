package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moneymgr/internal/entity"
	"moneymgr/internal/wire"

	"go.uber.org/zap"
)

// HTTPRepository talks to the ledger service's /transactions resource. It
// does not retry; every failure is classified and handed back to the caller.
type HTTPRepository struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTP(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPRepository {
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (r *HTTPRepository) List(ctx context.Context) ([]entity.Transaction, error) {
	var payload []wire.Transaction
	if err := r.do(ctx, http.MethodGet, "/transactions", nil, &payload); err != nil {
		return nil, err
	}

	txns := make([]entity.Transaction, 0, len(payload))
	for i, w := range payload {
		t, err := w.Entity()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (r *HTTPRepository) Create(ctx context.Context, f entity.Fields) (entity.Transaction, error) {
	var payload wire.Transaction
	if err := r.do(ctx, http.MethodPost, "/transactions", wire.NewBody(f), &payload); err != nil {
		return entity.Transaction{}, err
	}
	return payload.Entity()
}

func (r *HTTPRepository) Update(ctx context.Context, id string, f entity.Fields) error {
	return r.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), wire.NewBody(f), nil)
}

func (r *HTTPRepository) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

func (r *HTTPRepository) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", entity.NetworkErr, method, path, err)
	}
	defer resp.Body.Close()

	r.logger.Debug("ledger request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", entity.NotFoundErr, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s %s: %s", entity.ServerErr, method, path, resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", entity.DeserializationErr, method, path, err)
	}
	return nil
}
