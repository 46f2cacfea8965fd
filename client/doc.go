// Package client is the entry point for talking to the ModelMux API.
//
// A [Client] is constructed once from a validated [Config] and carries
// its own credential, default router, and retry policy; no state is
// shared between clients. It provides chat completions (blocking and
// streaming), the raw agent call used by the agent run loop, and
// passthrough reads for router configuration and model listings.
package client
