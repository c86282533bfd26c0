// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors classifies low-level HTTP/network errors so callers can
// map them onto the gateway error taxonomy and render troubleshooting hints.
package httperrors

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// IsTimeout checks if the error is a timeout or exceeded deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Check for net.Error with Timeout()
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsDNS checks if the error is a DNS resolution error.
func IsDNS(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// IsConnectionRefused checks if the error is a connection refused error.
func IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused")
}

// IsTLS checks if the error is an SSL/TLS error.
func IsTLS(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "ssl") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// Display renders a user-friendly diagnosis of a network error for CLI use.
// action describes the operation that failed (e.g. "provisioning an instance").
func Display(err error, action string) {
	if err == nil {
		return
	}

	switch {
	case IsTimeout(err):
		pterm.Printf("⏱️  Connection timeout while %s\n", action)
		pterm.Println()
		pterm.Println("The server took too long to respond. This could mean:")
		pterm.Println("  • Slow internet connection")
		pterm.Println("  • Server is under heavy load")
		pterm.Println("  • Network firewall is blocking the connection")
		pterm.Println()
		pterm.Println("Please try again in a few moments.")
	case IsDNS(err):
		pterm.Printf("🌐 Cannot resolve server address while %s\n", action)
		pterm.Println()
		pterm.Println("Please check:")
		pterm.Println("  • Your internet connection is working")
		pterm.Println("  • DNS settings are correct")
		pterm.Println("  • No DNS-level blocking (corporate firewall, parental controls)")
	case IsConnectionRefused(err):
		pterm.Printf("🚫 Connection refused while %s\n", action)
		pterm.Println()
		pterm.Println("The server is not accepting connections. This could mean:")
		pterm.Println("  • The service is temporarily down")
		pterm.Println("  • Firewall is blocking the connection")
		pterm.Println()
		pterm.Println("Please try again later.")
	case IsTLS(err):
		pterm.Printf("🔒 Secure connection failed while %s\n", action)
		pterm.Println()
		pterm.Println("Cannot establish a secure HTTPS connection. Try:")
		pterm.Println("  • Check your system date and time")
		pterm.Println("  • Verify network proxy settings")
	default:
		pterm.Printf("❌ Network error while %s: %v\n", action, err)
	}
	pterm.Println()
}
