package mcpjsonrpc

import "encoding/json"

// Based on JSON-RPC 2.0 Specification: https://www.jsonrpc.org/specification

// Version is the protocol version stamped on every response.
const Version = "2.0"

// Request represents a JSON-RPC request object.
// Params is kept raw so each method can decode its own parameter shape.
type Request struct {
	Version string          `json:"jsonrpc,omitempty"` // "2.0" for conforming clients; not enforced
	Method  string          `json:"method"`            // Method to be invoked
	Params  json.RawMessage `json:"params,omitempty"`  // Parameters (structured value)
	ID      interface{}     `json:"id,omitempty"`      // Request identifier (string, number, or absent)
}

// IsNotification reports whether the request carries no id.
// The server still answers such requests (with a null id) so that every
// input line produces exactly one output line.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// Response represents a JSON-RPC response object.
// The id field is always emitted; it is null when the request had none.
type Response struct {
	Version string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"` // Set on success
	Error   *Error      `json:"error,omitempty"`  // Set on failure
	ID      interface{} `json:"id"`               // Must match request ID (or null if could not be determined)
}

// Error represents a JSON-RPC error object.
type Error struct {
	Code    int         `json:"code"`           // Error code
	Message string      `json:"message"`        // Error message
	Data    interface{} `json:"data,omitempty"` // Additional data about the error
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes (subset, based on JSON-RPC spec)
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// NewResult builds a success response carrying result, echoing id.
func NewResult(id interface{}, result interface{}) *Response {
	return &Response{Version: Version, ID: id, Result: result}
}

// NewError builds a failure response with the given code and message, echoing id.
func NewError(id interface{}, code int, message string) *Response {
	return &Response{Version: Version, ID: id, Error: &Error{Code: code, Message: message}}
}

// CallToolParams defines the structure of the "params" field
// when the method is "tools/call".
type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}
