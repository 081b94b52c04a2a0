// Package shared holds the request decoding, response writing and trace id
// helpers used by every HTTP handler and middleware.
package shared
