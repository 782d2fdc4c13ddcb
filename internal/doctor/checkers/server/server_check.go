// Package server provides the checker for control server reachability.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

const checkName = "Control server reachable"

// Pinger checks that the control server answers.
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// Checker pings the control server
type Checker struct {
	pinger  Pinger
	baseURL string
}

// NewChecker creates a new server checker
func NewChecker(pinger Pinger, baseURL string) *Checker {
	return &Checker{
		pinger:  pinger,
		baseURL: baseURL,
	}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategoryServer
}

// Check pings the server once
func (c *Checker) Check(ctx context.Context) doctor.CheckResult {
	status, err := c.pinger.Ping(ctx)
	if err != nil {
		return doctor.FailError(checkName, "Unreachable at "+c.baseURL).
			WithDetails(
				fmt.Sprintf("Error: %v", err),
				"Start Command Center or set server.port / PORT",
			)
	}

	return doctor.Pass(checkName, fmt.Sprintf("%s answered %d %s", c.baseURL, status, http.StatusText(status)))
}
