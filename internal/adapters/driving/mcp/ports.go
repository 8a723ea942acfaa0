package mcp

import (
	"errors"

	"github.com/custodia-labs/repocat-cli/internal/core/ports/driving"
)

// Ports are the driving ports the MCP server exposes.
type Ports struct {
	Builder driving.DocumentBuilder
}

// Validate checks that every required port is present.
func (p *Ports) Validate() error {
	if p == nil || p.Builder == nil {
		return errors.New("mcp: document builder port is required")
	}
	return nil
}
