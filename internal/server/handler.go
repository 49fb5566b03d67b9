package server

import (
	"encoding/json"
)

// HandlerFunc handles one RPC request body and returns the response
// payload. Returned errors are serialized with their application error
// code so clients can branch on it.
type HandlerFunc func(body json.RawMessage) (any, error)
