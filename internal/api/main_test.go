package api

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in the api package.
// Server.Run spawns a listener goroutine; this verifies the shutdown path
// always reaps it.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Kernel poller goroutines persist across tests
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
