package testutils

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ParisBody is a wttr.in j1 document with every consumed field present
const ParisBody = `{"current_condition": [{"temp_C":"21","FeelsLikeC":"19","humidity":"55","windspeedKmph":"10","weatherDesc":[{"value":"Sunny"}]}]}`

// Upstream is a fake wttr.in answering every request with a fixed status and body
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewUpstream starts a fake wttr.in that is closed with the test
func NewUpstream(t testing.TB, status int, body string) *Upstream {
	t.Helper()

	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.requests = append(u.requests, r.Clone(r.Context()))
		u.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.Close)

	return u
}

// Requests returns the requests received so far
func (u *Upstream) Requests() []*http.Request {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*http.Request(nil), u.requests...)
}

// Hits returns the number of requests received so far
func (u *Upstream) Hits() int {
	return len(u.Requests())
}
