package websocket

import "errors"

// ErrConnectionLimit is returned when the global connection cap is reached.
var ErrConnectionLimit = errors.New("websocket connection limit reached")
