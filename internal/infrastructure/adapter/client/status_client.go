package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
)

const statusPath = "/api/generation-status"

// Config points the client at a running API
type Config struct {
	BaseURL string
	// Token is sent as a bearer token on mark-failed requests
	Token   string
	Timeout time.Duration
}

// StatusClient implements gateway.StatusClient over the HTTP API
type StatusClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     coreport.Logger
}

var _ gateway.StatusClient = (*StatusClient)(nil)

// NewStatusClient creates a client. A nil httpClient gets one with cfg.Timeout.
func NewStatusClient(cfg Config, httpClient *http.Client, logger coreport.Logger) *StatusClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &StatusClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger.With(map[string]any{"component": "status_client"}),
	}
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type markFailedRequest struct {
	GenerationID uint64 `json:"generationId"`
	Reason       string `json:"reason"`
}

// Status queries the current state of a generation
func (c *StatusClient) Status(ctx context.Context, generationID uint64) (*entity.GenerationSnapshot, error) {
	query := url.Values{"generationId": {strconv.FormatUint(generationID, 10)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statusPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	req.Header.Set("Accept", "application/json")

	var snapshot entity.GenerationSnapshot
	if err := c.do(req, &snapshot); err != nil {
		return nil, err
	}
	if !snapshot.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrConnection, snapshot.Status)
	}
	return &snapshot, nil
}

// MarkFailed asks the API to fail a generation that is still processing
func (c *StatusClient) MarkFailed(ctx context.Context, generationID uint64, reason string) error {
	body, err := json.Marshal(markFailedRequest{GenerationID: generationID, Reason: reason})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+statusPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.do(req, nil); err != nil {
		return err
	}
	c.logger.Info("Generation marked as failed", map[string]any{
		"generation_id": generationID,
		"reason":        reason,
	})
	return nil
}

// do sends req and decodes a 200 response into out
func (c *StatusClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(req, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", errs.ErrConnection, err)
	}
	return nil
}

func (c *StatusClient) statusError(req *http.Request, resp *http.Response) error {
	var body apiError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	c.logger.Warn("Status API returned an error", map[string]any{
		"method":      req.Method,
		"status_code": resp.StatusCode,
		"code":        body.Code,
		"message":     body.Message,
	})

	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = errs.ErrGenerationNotFound
	case http.StatusUnauthorized:
		sentinel = errs.ErrAuthentication
	case http.StatusForbidden:
		sentinel = errs.ErrAuthorization
	case http.StatusBadRequest:
		if req.Method == http.MethodPost {
			sentinel = errs.ErrInvalidState
		} else {
			sentinel = errs.ErrInvalidGenerationID
		}
	default:
		sentinel = errs.ErrConnection
	}

	if body.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, body.Message)
	}
	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}
