// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChatResponse is the answer returned by the chat endpoint.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`

	// Timestamp is an RFC 3339 UTC instant generated at response time.
	Timestamp string `json:"timestamp"`
}
