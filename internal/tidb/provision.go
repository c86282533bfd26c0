// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"tidbzero/mcp/internal/httperrors"
	"tidbzero/mcp/internal/logging"
)

// zeroAPI is the TiDB Cloud Zero provisioning endpoint. It hands out free
// disposable instances with a 72-hour lifetime, no signup or API key
// required.
const zeroAPI = "https://zero.tidbapi.com/v1alpha1/instances"

// Provisioner creates disposable TiDB Cloud Zero instances. It never
// retries; retry policy belongs to the caller (statements may already have
// been dispatched by the time a caller decides a retry is safe).
type Provisioner struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
}

// NewProvisioner returns a provisioner with the given per-request timeout.
func NewProvisioner(timeout time.Duration) *Provisioner {
	return &Provisioner{
		endpoint: zeroAPI,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// provisionResponse mirrors the Zero API response shape.
type provisionResponse struct {
	Instance struct {
		InstanceID string `json:"instanceId"`
		Connection struct {
			Host     string `json:"host"`
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"connection"`
		ExpiresAt string `json:"expiresAt"`
	} `json:"instance"`
}

// Provision requests a new instance and returns its record. The record is
// fully validated before it is returned, so callers can persist it without
// risking a partial cache entry.
func (p *Provisioner) Provision(ctx context.Context) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, nil)
	if err != nil {
		return nil, &ProvisionError{Err: err}
	}
	req.Header.Set("User-Agent", "tidb-zero-mcp/1.0")

	logging.Debugf("provision: POST %s", p.endpoint)
	resp, err := p.client.Do(req)
	if err != nil {
		if httperrors.IsTimeout(err) {
			return nil, &TimeoutError{Op: "provisioning request", Err: err}
		}
		return nil, &ProvisionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ProvisionError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	var out provisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ProvisionError{Message: "unparseable response", Err: err}
	}

	conn := out.Instance.Connection
	if conn.Host == "" || conn.Username == "" || conn.Password == "" {
		return nil, &ProvisionError{Message: "response missing connection parameters"}
	}

	rec := &Record{
		Host:       conn.Host,
		Username:   conn.Username,
		Password:   conn.Password,
		Database:   DefaultDatabase,
		InstanceID: out.Instance.InstanceID,
		CreatedAt:  p.now().UTC(),
	}
	if out.Instance.ExpiresAt != "" {
		// Tolerate a missing or malformed expiry; the instance still works,
		// it just won't be proactively refreshed.
		if exp, err := time.Parse(time.RFC3339, out.Instance.ExpiresAt); err == nil {
			rec.ExpiresAt = exp
		} else {
			logging.Debugf("provision: unparseable expiresAt %q", out.Instance.ExpiresAt)
		}
	}

	logging.Debugf("provision: new instance %s at %s, expires %s",
		rec.InstanceID, rec.Host, rec.ExpiresAt)
	return rec, nil
}
