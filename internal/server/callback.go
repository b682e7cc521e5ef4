package server

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// CallbackHandler receives the OAuth redirect and forwards its query
// parameters to the auth engine. It performs no validation itself: state
// checking, transaction consumption, and the token exchange all belong to
// the engine's state machine. Implements the [Handler] interface.
type CallbackHandler struct {
	resultChan  chan url.Values
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a handler for the loopback redirect endpoint.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{
		resultChan: make(chan url.Values, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP captures the redirect's query parameters and renders a static
// close-this-window page. Only the first callback is processed; replays get
// a 400 without reaching the engine.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	params := r.URL.Query()
	h.Send(params)

	heading, detail := "✓ Authorization Received", "You can close this window and return to the terminal."
	if params.Get("error") != "" {
		heading, detail = "✗ Authorization Failed", "Return to the terminal for details."
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>subdeck</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #FF0000; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, heading, detail)
}

// Send forwards the callback parameters through the channel (only once).
func (h *CallbackHandler) Send(params url.Values) {
	h.once.Do(func() {
		h.resultChan <- params
		close(h.resultChan)
	})
}

// Result returns the channel that receives the redirect parameters.
//
// The channel receives exactly one value and is then closed.
func (h *CallbackHandler) Result() <-chan url.Values {
	return h.resultChan
}
