// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Gateway composes the resolver and executor into the public SQL operations.
// Every call resolves credentials and executes independently; there is no
// connection state to manage, only the credential cache amortizing the
// provisioning cost across calls.
type Gateway struct {
	resolver *Resolver
	exec     *Executor
}

// NewGateway wires a gateway with default cache, provisioner, and executor,
// all sharing the given network timeout.
func NewGateway(timeout time.Duration) *Gateway {
	return &Gateway{
		resolver: NewResolver(NewCache(), NewProvisioner(timeout)),
		exec:     NewExecutor(timeout),
	}
}

// run resolves credentials, executes one statement, and applies the
// auth-rejection policy: rejected managed credentials invalidate the cache
// so the next call re-provisions instead of repeating a doomed request.
func (g *Gateway) run(ctx context.Context, stmt string) (Result, error) {
	profile, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	res, err := g.exec.Exec(ctx, profile, stmt)
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) && qe.AuthRejected() && profile.Managed() {
			g.resolver.Invalidate()
		}
		return nil, err
	}
	return res, nil
}

// Query executes a statement and returns its normalized result. It is
// documented for read-only statements but does not enforce that; the
// protocol layer applies the advisory check.
func (g *Gateway) Query(ctx context.Context, sql string) (Result, error) {
	return g.run(ctx, sql)
}

// Execute executes a write statement and returns its normalized result.
func (g *Gateway) Execute(ctx context.Context, sql string) (Result, error) {
	return g.run(ctx, sql)
}

// BatchExecute runs statements sequentially, stopping at the first failure.
// Statement i+1 is never dispatched until statement i's response arrives.
// On failure it returns the results gathered so far together with a
// BatchError naming the zero-based failing index; later statements are
// never attempted.
func (g *Gateway) BatchExecute(ctx context.Context, statements []string) ([]Result, error) {
	results := make([]Result, 0, len(statements))
	for i, stmt := range statements {
		res, err := g.run(ctx, stmt)
		if err != nil {
			return results, &BatchError{Index: i, Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}

// TableInfo pairs a table name with a row-count estimate. RowEstimate is -1
// when the count could not be determined.
type TableInfo struct {
	Name        string
	RowEstimate int64
}

// ListTables returns the tables of the current database with row counts.
// A failing count does not fail the operation.
func (g *Gateway) ListTables(ctx context.Context) ([]TableInfo, error) {
	res, err := g.run(ctx, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	rs, ok := res.(*RowSet)
	if !ok {
		return []TableInfo{}, nil
	}

	tables := make([]TableInfo, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		if len(row) == 0 {
			continue
		}
		info := TableInfo{Name: row[0], RowEstimate: -1}
		if count, err := g.countRows(ctx, row[0]); err == nil {
			info.RowEstimate = count
		}
		tables = append(tables, info)
	}
	return tables, nil
}

// countRows runs SELECT COUNT(*) for one table.
func (g *Gateway) countRows(ctx context.Context, table string) (int64, error) {
	res, err := g.run(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table))
	if err != nil {
		return 0, err
	}
	rs, ok := res.(*RowSet)
	if !ok || len(rs.Rows) == 0 || len(rs.Rows[0]) == 0 {
		return 0, errors.New("no count returned")
	}
	return strconv.ParseInt(rs.Rows[0][0], 10, 64)
}

// DescribeTable returns the schema of one table. A table unknown to the
// server yields NotFoundError rather than a generic query failure.
func (g *Gateway) DescribeTable(ctx context.Context, table string) (*RowSet, error) {
	res, err := g.run(ctx, "DESCRIBE "+quoteIdent(table))
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) && (qe.Code == errNoSuchTable || qe.Code == errBadDB) {
			return nil, &NotFoundError{Table: table}
		}
		return nil, err
	}
	rs, ok := res.(*RowSet)
	if !ok {
		return nil, &NotFoundError{Table: table}
	}
	return rs, nil
}

// DatabaseInfo describes the active connection.
type DatabaseInfo struct {
	Database string
	Version  string
	Host     string
	APIURL   string
	Tables   int

	// ExpiresAt is set only for auto-provisioned instances.
	ExpiresAt time.Time
	Managed   bool
}

// DatabaseInfo reports version, connection identity, and table count. For
// auto-provisioned instances it also reports the cached expiry.
func (g *Gateway) DatabaseInfo(ctx context.Context) (*DatabaseInfo, error) {
	profile, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	info := &DatabaseInfo{
		Host:    profile.Host,
		APIURL:  profile.APIURL(),
		Managed: profile.Managed(),
	}
	if info.Managed {
		info.ExpiresAt = profile.ExpiresAt
	}

	res, err := g.run(ctx, "SELECT VERSION()")
	if err != nil {
		return nil, err
	}
	if rs, ok := res.(*RowSet); ok && len(rs.Rows) > 0 && len(rs.Rows[0]) > 0 {
		info.Version = rs.Rows[0][0]
	}
	info.Database = g.scalar(ctx, "SELECT DATABASE()")
	if info.Database == "" {
		info.Database = profile.Database
	}

	if res, err := g.run(ctx, "SHOW TABLES"); err == nil {
		if rs, ok := res.(*RowSet); ok {
			info.Tables = len(rs.Rows)
		}
	}
	return info, nil
}

// scalar runs a single-value query, returning "" on any failure.
func (g *Gateway) scalar(ctx context.Context, stmt string) string {
	res, err := g.run(ctx, stmt)
	if err != nil {
		return ""
	}
	rs, ok := res.(*RowSet)
	if !ok || len(rs.Rows) == 0 || len(rs.Rows[0]) == 0 {
		return ""
	}
	return rs.Rows[0][0]
}

// quoteIdent wraps an identifier in backticks, escaping embedded backticks.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
