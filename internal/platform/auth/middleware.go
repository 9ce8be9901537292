// Package auth verifies that inbound interaction requests were signed by the
// chat platform.
package auth

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/platform/respond"
)

// Signature headers.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// maxBody caps the signed payload read into memory.
const maxBody = 1 << 20

// Verification failures.
var (
	ErrMissingSignature = errors.New("missing signature headers")
	ErrMalformedSig     = errors.New("malformed signature")
	ErrBadSignature     = errors.New("signature mismatch")
	ErrBodyTooLarge     = errors.New("request body too large")
)

// ParsePublicKey decodes the hex application public key.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key: expected %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// Verify checks sig over timestamp||body.
func Verify(key ed25519.PublicKey, sigHex, timestamp string, body []byte) error {
	if sigHex == "" || timestamp == "" {
		return ErrMissingSignature
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrMalformedSig
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	if !ed25519.Verify(key, msg, sig) {
		return ErrBadSignature
	}
	return nil
}

// Middleware returns Echo middleware that rejects requests whose Ed25519
// signature does not verify against key. The body is restored for the
// handler.
func Middleware(key ed25519.PublicKey) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			req := c.Request()
			body, err := io.ReadAll(io.LimitReader(req.Body, maxBody+1))
			if err != nil {
				return respond.Error400("unreadable request body")
			}
			if len(body) > maxBody {
				err = ErrBodyTooLarge
			} else {
				err = Verify(key, req.Header.Get(HeaderSignature), req.Header.Get(HeaderTimestamp), body)
			}
			if err != nil {
				applog.LogWarn(req.Context(), "signature verification failed",
					slog.String("reason", categorize(err)))
				return respond.Error401("invalid request signature")
			}

			req.Body = io.NopCloser(bytes.NewReader(body))
			return next(c)
		}
	}
}

// categorize returns a safe category string for logging.
func categorize(err error) string {
	switch {
	case errors.Is(err, ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, ErrMalformedSig):
		return "malformed_signature"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	default:
		return "unknown"
	}
}
