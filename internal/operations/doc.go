// Package operations provides the data model and HTTP client for the
// operations backend.
//
// # Overview
//
// The backend exposes a single read-only endpoint:
//
//   - GET {api_url}/operations: the complete, ordered list of operations
//
// The payload is either a bare JSON array or an object with an "items" array.
// An object without "items" (an error body sent with 200, say) is a decode
// failure, never an empty list. Bodies over 16 MiB are rejected.
// Server order is meaningful and is preserved exactly.
//
// # Client Usage
//
//	client, err := operations.NewClient("http://127.0.0.1:8080", 10*time.Second)
//	if err != nil {
//		return err
//	}
//	list, err := client.FetchAll(ctx)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: opsview/0.1
//   - Carry a fresh X-Request-ID (UUID) that is also written to the log
//   - Honour the configured request timeout
//
// # Error Handling
//
// Every failure is returned as *RetrievalError, which names the failing step
// and wraps the cause so errors.Is(err, context.Canceled) keeps working:
//
//   - "retrieve operations: execute request: dial tcp: connection refused"
//   - "retrieve operations: api /operations: returned status 500"
//   - "retrieve operations: decode response: unexpected end of JSON input"
//
// An empty list is a successful result and is returned as a non-nil, empty
// slice so callers can tell it apart from a failure.
//
// # Design Rationale
//
// The client does not retry and does not cache. Retrying is an explicit user
// action handled by the listing controller re-activating.
package operations
