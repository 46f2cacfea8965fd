// Package tool manages local tool callbacks for agent runs.
//
// [Extract] splits a caller-supplied tool list into a transmit-safe copy
// (callbacks removed) and a [Registry] keyed by function name. The
// registry resolves tool calls issued by the remote agent, invoking the
// matching callback and converting every failure mode - missing
// callback, malformed arguments, callback error or panic - into an
// in-band error payload the model can observe, rather than an error
// that aborts the run.
package tool
