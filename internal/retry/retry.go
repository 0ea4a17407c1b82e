// Package retry executes single database round trips with bounded retries
// on transient connectivity failures. Callers must only hand it operations
// that are safe to repeat: reads, conditional updates, or transactions that
// roll back fully on failure.
package retry

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"
)

// Runner bounds the retry loop. Delay grows linearly: Delay, 2*Delay, ...
type Runner struct {
	Attempts int
	Delay    time.Duration
	Sleep    func(time.Duration) // swapped in tests
}

var Default = Runner{Attempts: 4, Delay: 100 * time.Millisecond}

// Do runs op with the default runner.
func Do(op func() error) error { return Default.Do(op) }

// Do runs op, retrying transient failures up to r.Attempts total attempts.
// The last error is returned unchanged after exhaustion; permanent errors
// return immediately.
func (r Runner) Do(op func() error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			sleep(time.Duration(i) * r.Delay)
		}
		if err = op(); err == nil {
			return nil
		}
		if !Transient(err) {
			return err
		}
	}
	return err
}

// Transient classifies connectivity-shaped failures: pool/lock contention,
// connection resets, timeouts establishing a connection. Constraint
// violations, syntax errors and not-found are permanent.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	// modernc sqlite surfaces lock contention as text, no sentinel values.
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"database is locked",
		"database table is locked",
		"sqlite_busy",
		"connection reset",
		"connection refused",
		"connection pool",
		"i/o timeout",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
