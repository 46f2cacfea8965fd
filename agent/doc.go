// Package agent implements the tool-execution loop around the remote
// agent endpoint.
//
// [Agent.Run] repeatedly calls the remote agent, executes any requested
// tool callbacks locally through a [tool.Registry], appends the results
// to the conversation, and resubmits until the agent produces a final
// answer or the iteration budget is exhausted. Tool-level failures are
// absorbed into the conversation as in-band error payloads; network,
// authentication, and validation errors unwind immediately.
//
// [Agent.Execute] performs a single round trip with callbacks stripped,
// leaving tool-call resolution to the caller.
package agent
