// Package types provides shared data structures for the incgamma service.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Context: Execution context for operations
//   - Result: Standard operation result
//   - ExecuteRequest: Tool execution payload
package types
