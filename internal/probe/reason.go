package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Reason maps a transport failure to a short, stable description suitable
// for live output and the persisted report.
//
// Known failure classes (DNS resolution, connection refusal, TLS handshake,
// deadline exceeded) are reduced to fixed phrases; anything else falls back
// to the error's own message. Returns "" for a nil error.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	// Peel the outer *url.Error so the reason does not repeat the request
	// method and URL, which the surrounding record already carries.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline exceeded"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset"
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "connection closed"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns: " + dnsErr.Err
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return "tls: failed to verify certificate"
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return "tls: handshake failed"
	}

	// i/o timeouts that are not context deadlines (e.g., TCP connect timeout)
	// still count as the attempt exceeding its bound.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "deadline exceeded"
	}

	return err.Error()
}
