// Package driving defines the ports through which adapters (CLI, MCP)
// drive the core.
package driving
