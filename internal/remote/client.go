// Package remote is the HTTP client for the external reports/auth authority.
// Only the contract the engine relies on is implemented: create/list/patch/
// delete for reports, register/login for sessions.
//
// Every failure — network error, timeout, malformed body, negative
// acknowledgment — collapses into an error wrapping ErrUnavailable (for the
// reports surface) or an AuthError carrying the authority's detail text (for
// the auth surface). Callers branch on "succeeded or not", never on failure
// mode.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/civicsense/backend/internal/models"
)

// ErrUnavailable marks any failed interaction with the reports collection
// endpoint. The submission coordinator takes the local fallback branch on
// it; management operations surface it and leave local state unmodified.
var ErrUnavailable = errors.New("reports authority unavailable")

// AuthError carries the authority's rejection detail for sign-in and
// registration failures, so the prompt can show the server's own message.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string { return e.Detail }

const defaultTimeout = 10 * time.Second

// Client talks to one authority base URL.
type Client struct {
	base  string
	httpc *http.Client
	log   *slog.Logger
}

// New creates a client for the given base URL. A trailing slash is trimmed
// so path joining stays predictable. The transport timeout is the only
// timeout the engine relies on — a hung authority must fail the call, not
// the caller.
func New(base string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: defaultTimeout},
		log:   log,
	}
}

// createPayload is the wire shape of a report creation: the raw input plus
// the contributor's verified email.
type createPayload struct {
	UserEmail string `json:"user_email"`
	models.NewReport
}

// CreateReport asks the authority to create and classify a report. On
// success the returned record is complete — server-assigned id, category,
// status, point award and timestamp — and is accepted verbatim by the
// caller.
func (c *Client) CreateReport(ctx context.Context, token, email string, input models.NewReport) (models.Report, error) {
	var created models.Report
	err := c.do(ctx, http.MethodPost, "/reports", token, createPayload{UserEmail: email, NewReport: input}, &created)
	if err != nil {
		return models.Report{}, err
	}
	if created.ID == "" || !models.ValidStatus(created.Status) {
		// A 2xx with a malformed body is still a failed creation.
		return models.Report{}, fmt.Errorf("malformed report from authority: %w", ErrUnavailable)
	}
	return created, nil
}

// ListReports fetches the authority's full ordered report collection.
func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var listed []models.Report
	if err := c.do(ctx, http.MethodGet, "/reports", "", nil, &listed); err != nil {
		return nil, err
	}
	return listed, nil
}

// UpdateStatus patches one report's status. The caller commits locally only
// after this returns nil.
func (c *Client) UpdateStatus(ctx context.Context, token, id string, status models.Status) error {
	return c.do(ctx, http.MethodPatch, "/reports/"+id, token, models.StatusUpdateRequest{Status: status}, nil)
}

// DeleteReport removes one report at the authority.
func (c *Client) DeleteReport(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/reports/"+id, token, nil, nil)
}

// do runs one JSON round trip. Any transport error or non-2xx response maps
// to ErrUnavailable.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s: %w", method, path, resp.Status, ErrUnavailable)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %v: %w", method, path, err, ErrUnavailable)
	}
	return nil
}
