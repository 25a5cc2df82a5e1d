package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/dnac"
	"github.com/imamik/sdactl/internal/platform/rest"
)

const (
	testUser     = "admin"
	testPassword = "secret"
	testToken    = "tok-123"
)

// saveAndRestoreFactories swaps every factory variable for a test-friendly
// default and restores the originals on cleanup. It returns the captured stdout.
func saveAndRestoreFactories(t *testing.T) *bytes.Buffer {
	t.Helper()
	origStdout := stdout
	origStderr := stderr
	origLoadTimeouts := loadTimeouts
	origWriteFile := writeFile
	origLoadProfile := loadProfile
	origIsInteractive := isInteractive
	origPromptPassword := promptPassword
	origLoadFabricDocument := loadFabricDocument
	origLoadPolicyDocument := loadPolicyDocument
	origLoadEgressDocument := loadEgressDocument
	origNewArchiver := newArchiver
	origWriteMetrics := writeMetrics
	origCheckTools := checkTools
	origIsTerminalOutput := isTerminalOutput
	origRunDashboard := runDashboard

	t.Cleanup(func() {
		stdout = origStdout
		stderr = origStderr
		loadTimeouts = origLoadTimeouts
		writeFile = origWriteFile
		loadProfile = origLoadProfile
		isInteractive = origIsInteractive
		promptPassword = origPromptPassword
		loadFabricDocument = origLoadFabricDocument
		loadPolicyDocument = origLoadPolicyDocument
		loadEgressDocument = origLoadEgressDocument
		newArchiver = origNewArchiver
		writeMetrics = origWriteMetrics
		checkTools = origCheckTools
		isTerminalOutput = origIsTerminalOutput
		runDashboard = origRunDashboard
	})

	t.Setenv(PasswordEnv, "")

	var out bytes.Buffer
	stdout = &out
	stderr = io.Discard
	loadTimeouts = func() *config.Timeouts {
		return &config.Timeouts{Login: 5 * time.Second, Request: 5 * time.Second, PolicyRequest: 5 * time.Second}
	}
	loadProfile = func(string) (*config.Profile, error) { return &config.Profile{}, nil }
	isInteractive = func() bool { return false }
	isTerminalOutput = func() bool { return false }
	return &out
}

// controllerStub records requests and fails the paths listed in fail.
type controllerStub struct {
	mu    sync.Mutex
	paths []string
	fail  map[string]bool
	list  map[string]any
}

func (s *controllerStub) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func (s *controllerStub) count(prefix string) int {
	n := 0
	for _, p := range s.requests() {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	return n
}

// newControllerServer emulates the login endpoint and accepts every other
// request carrying either the test token or the test basic credentials.
func newControllerServer(t *testing.T, fail ...string) (*httptest.Server, *controllerStub) {
	t.Helper()
	stub := &controllerStub{fail: map[string]bool{}, list: map[string]any{}}
	for _, f := range fail {
		stub.fail[f] = true
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.paths = append(stub.paths, r.Method+" "+r.URL.Path)
		failed := stub.fail[r.URL.Path]
		listing, isList := stub.list[r.URL.Path]
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		user, pass, basic := r.BasicAuth()

		if r.URL.Path == dnac.LoginPath {
			if !basic || user != testUser || pass != testPassword {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"Token": testToken})
			return
		}

		authorized := r.Header.Get(rest.TokenHeader) == testToken || (basic && pass == testPassword)
		if !authorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if failed {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		if isList && r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(listing)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"executionStatusUrl":"/task/1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, stub
}

func testConnection(srv *httptest.Server) ConnectionOptions {
	return ConnectionOptions{Host: srv.URL, Username: testUser, Password: testPassword}
}
