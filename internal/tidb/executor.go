// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tidbzero/mcp/internal/httperrors"
	"tidbzero/mcp/internal/logging"
)

// Result is the normalized outcome of one successful SQL statement. It is
// exactly one of RowSet or Ack, determined by what the remote endpoint
// returned rather than by inspecting the statement.
type Result interface {
	isResult()
}

// RowSet holds tabular data: column names in order and rows of field values
// in column order. The HTTP API returns every field as a string.
type RowSet struct {
	Columns []string
	Rows    [][]string
}

func (*RowSet) isResult() {}

// Ack acknowledges a statement without row data.
type Ack struct {
	RowsAffected int64
	LastInsertID string
}

func (*Ack) isResult() {}

// Executor sends SQL statements to the TiDB Serverless HTTP endpoint. Every
// call is one independent POST: no connection, cursor, or transaction state
// survives between calls, and failed statements are never retried here
// because DML/DDL cannot be assumed idempotent.
type Executor struct {
	client *http.Client

	// baseURL overrides the profile-derived endpoint; used by tests.
	baseURL string
}

// NewExecutor returns an executor with the given per-request timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{client: &http.Client{Timeout: timeout}}
}

// sqlResponse mirrors the HTTP API response shape. A success carries either
// column/row data or an affected-row count; an error carries code/message.
type sqlResponse struct {
	Types []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"types"`
	Rows         [][]string      `json:"rows"`
	RowsAffected *int64          `json:"rowsAffected"`
	LastInsertID json.RawMessage `json:"sLastInsertID"`
	Code         int             `json:"code"`
	Message      string          `json:"message"`
}

// Exec runs one statement against the instance described by profile.
func (e *Executor) Exec(ctx context.Context, profile *Profile, stmt string) (Result, error) {
	body, err := json.Marshal(map[string]string{"query": stmt})
	if err != nil {
		return nil, err
	}

	endpoint := e.baseURL
	if endpoint == "" {
		endpoint = profile.APIURL()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", profile.AuthHeader())
	req.Header.Set("TiDB-Database", profile.Database)

	logging.Debugf("exec: POST %s: %s", endpoint, stmt)
	resp, err := e.client.Do(req)
	if err != nil {
		if httperrors.IsTimeout(err) {
			return nil, &TimeoutError{Op: "sql request", Err: err}
		}
		return nil, fmt.Errorf("sql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read sql response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, queryErrorFrom(resp.StatusCode, raw)
	}

	var out sqlResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse sql response: %w", err)
	}

	// Some statements fail with a 200 and an error payload instead of a
	// non-2xx status; treat a message without row data as a failure.
	if out.Types == nil && out.RowsAffected == nil && out.Message != "" {
		return nil, &QueryError{HTTPStatus: resp.StatusCode, Code: out.Code, Message: out.Message}
	}

	if out.Types != nil {
		rs := &RowSet{Columns: make([]string, len(out.Types))}
		for i, t := range out.Types {
			rs.Columns[i] = t.Name
		}
		rs.Rows = out.Rows
		if rs.Rows == nil {
			rs.Rows = [][]string{}
		}
		return rs, nil
	}

	ack := &Ack{LastInsertID: decodeInsertID(out.LastInsertID)}
	if out.RowsAffected != nil {
		ack.RowsAffected = *out.RowsAffected
	}
	return ack, nil
}

// queryErrorFrom builds a QueryError from a non-2xx response, preserving the
// remote message and SQL error code verbatim when the body is JSON.
func queryErrorFrom(status int, raw []byte) *QueryError {
	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return &QueryError{HTTPStatus: status, Code: payload.Code, Message: payload.Message}
	}
	return &QueryError{HTTPStatus: status, Message: strings.TrimSpace(string(raw))}
}

// decodeInsertID accepts the last-insert-id as either a JSON string or a
// number; the API has served both.
func decodeInsertID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
