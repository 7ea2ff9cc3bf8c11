package scenario

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// StubBackend is a fake Crash-Game service instance. It answers every request with a fixed status and
// body and records the paths it was asked for.
type StubBackend struct {
	// URL is the address registered with the gateway (StubHost plus the listener port).
	URL    string
	Name   string
	server *httptest.Server

	mu     sync.Mutex
	status int
	paths  []string
}

// StartStub starts a stub named name answering status on every path.
func StartStub(cfg *Config, name string, status int) (*StubBackend, error) {
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.StubBind, "0"))
	if err != nil {
		return nil, fmt.Errorf("stub %s: listen: %w", name, err)
	}
	s := &StubBackend{Name: name, status: status}
	s.server = httptest.NewUnstartedServer(http.HandlerFunc(s.serve))
	s.server.Listener.Close()
	s.server.Listener = lis
	s.server.Start()

	host := cfg.StubHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := lis.Addr().(*net.TCPAddr).Port
	s.URL = "http://" + net.JoinHostPort(host, strconv.Itoa(port))
	return s, nil
}

func (s *StubBackend) serve(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	status := s.status
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, s.Body())
}

// Body is the response body the stub sends.
func (s *StubBackend) Body() string {
	return "stub " + s.Name
}

// SetStatus changes the status answered from the next request on.
func (s *StubBackend) SetStatus(status int) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Hits returns how many requests the stub has served.
func (s *StubBackend) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// Paths returns the request paths in arrival order.
func (s *StubBackend) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Reset forgets every recorded request.
func (s *StubBackend) Reset() {
	s.mu.Lock()
	s.paths = nil
	s.mu.Unlock()
}

func (s *StubBackend) Close() {
	s.server.Close()
}
