// Package app wires the configuration into a REST client and runs the CLI commands.
// It owns the single TransportProvider of the process, so every client it creates
// shares one transport client, one dispatcher, and one metrics collector.
package app
