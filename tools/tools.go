//go:build tools

// Package tools pins code generator versions in go.mod.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
