// Package driven defines the ports the core depends on.
package driven
