package retry

import (
	"errors"
	"net"
	"net/url"
	"syscall"

	"github.com/modelmux/modelmux-go"
)

// IsTransient determines if an error is transient and should be retried.
// It first checks if the error implements modelmux.CategorizedError for
// explicit categorization. If not, it falls back to heuristic detection
// of network-level failures:
//   - timeouts
//   - connection resets and refusals
//   - temporary DNS failures
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce modelmux.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == modelmux.ErrorTransient
	}

	return isTransientNetworkError(err)
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	return false
}
