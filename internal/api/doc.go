// Package api provides the HTTP client for the Tacomail REST API. It handles
// request/response serialization and error mapping; every call is a single
// attempt with no retries, so transport failures surface immediately.
//
// Non-2xx responses are returned as [*Error] carrying the HTTP status code
// and the raw response body.
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
