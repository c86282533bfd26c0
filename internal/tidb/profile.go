// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tidb implements the SQL gateway: credential resolution with
// auto-provisioning of disposable TiDB Cloud Zero instances, and stateless
// SQL execution against the TiDB Serverless HTTP API. No MySQL driver or
// persistent connection is involved; every operation is a single HTTPS
// request.
package tidb

import (
	"encoding/base64"
	"time"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "test"

// Source records where a connection profile came from. Auth rejections only
// invalidate the credential cache for managed (cached or freshly
// provisioned) profiles; explicit configuration is never discarded.
type Source int

const (
	SourceURL Source = iota
	SourceFields
	SourceCache
	SourceProvisioned
)

// Profile holds the connection parameters for one TiDB instance. It is
// immutable once resolved; the resolver hands out the same value until the
// cache is invalidated.
type Profile struct {
	Host     string
	Username string
	Password string
	Database string

	// ExpiresAt is zero for explicitly configured instances.
	ExpiresAt time.Time
	Source    Source
}

// APIURL returns the TiDB Serverless SQL-over-HTTP endpoint for this host.
func (p *Profile) APIURL() string {
	return "https://http-" + p.Host + "/v1beta/sql"
}

// AuthHeader returns the Basic-Authentication header value.
func (p *Profile) AuthHeader() string {
	credentials := p.Username + ":" + p.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// Configured reports whether the profile carries enough to authenticate.
func (p *Profile) Configured() bool {
	return p.Host != "" && p.Username != "" && p.Password != ""
}

// Expired reports whether the profile's instance lifetime has passed.
// Profiles without an expiry never expire.
func (p *Profile) Expired(now time.Time) bool {
	if p.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(p.ExpiresAt)
}

// Managed reports whether the profile came from the local cache or from
// auto-provisioning rather than explicit configuration.
func (p *Profile) Managed() bool {
	return p.Source == SourceCache || p.Source == SourceProvisioned
}
