// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tidb

import "fmt"

// MySQL server error codes the gateway reacts to.
const (
	errAccessDenied    = 1045 // ER_ACCESS_DENIED_ERROR
	errBadDB           = 1049 // ER_BAD_DB_ERROR
	errNoSuchTable     = 1146 // ER_NO_SUCH_TABLE
	errTableAccessDeny = 1142 // ER_TABLEACCESS_DENIED_ERROR
)

// ConfigError represents explicitly provided but structurally invalid
// connection settings. It is never recovered from by falling back to the
// cache or auto-provisioning.
type ConfigError struct {
	Reason string
	Hint   string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid connection settings: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid connection settings: %s", e.Reason)
}

// ProvisionError represents a failed call to the Zero provisioning endpoint.
type ProvisionError struct {
	Status  int // HTTP status, 0 when the request never completed
	Message string
	Err     error
}

func (e *ProvisionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provisioning failed (%d): %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("provisioning failed: %v", e.Err)
	}
	return fmt.Sprintf("provisioning failed: %s", e.Message)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// QueryError represents a failure reported by the remote SQL endpoint.
// Message and Code are preserved verbatim from the response.
type QueryError struct {
	HTTPStatus int
	Code       int // MySQL error code, 0 when absent
	Message    string
}

func (e *QueryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("sql error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("sql endpoint error (%d): %s", e.HTTPStatus, e.Message)
}

// AuthRejected reports whether the failure means the credentials themselves
// were rejected, as opposed to the statement failing.
func (e *QueryError) AuthRejected() bool {
	return e.HTTPStatus == 401 || e.HTTPStatus == 403 || e.Code == errAccessDenied
}

// TimeoutError represents a network call that exceeded its deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// NotFoundError represents an introspection target that does not exist.
type NotFoundError struct {
	Table string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Table)
}

// BatchError reports which statement of a batch failed. Statements after
// Index were never dispatched.
type BatchError struct {
	Index int // zero-based
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("statement %d failed: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
