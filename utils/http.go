package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by every outbound call (Discord token exchange and
// profile fetch).
var HTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}
