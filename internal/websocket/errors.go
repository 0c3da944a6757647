// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrHubBusy    = errors.New("websocket hub broadcast queue is full")
	ErrHubStopped = errors.New("websocket hub is not running")
)
