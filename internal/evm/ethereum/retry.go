package ethereum

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/clock"
)

// RetryPolicy bounds how often a failed RPC call is repeated.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:    5,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     30 * time.Second,
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	return p
}

// delay returns the wait before the next attempt. Rate-limited calls wait one step longer.
func (p RetryPolicy) delay(attempt int, action Action) time.Duration {
	if action == ActionRateLimited {
		attempt++
	}
	return clock.Backoff(p.InitialBackoff, p.MaxBackoff, attempt)
}

// Action tells the caller how to react to a failed call.
type Action int

const (
	// ActionRetry marks transient network or node errors.
	ActionRetry Action = iota
	// ActionRateLimited marks throttling responses; retried with a longer delay.
	ActionRateLimited
	// ActionFatal marks errors that repeating the call cannot fix.
	ActionFatal
)

func (a Action) String() string {
	switch a {
	case ActionRetry:
		return "transient"
	case ActionRateLimited:
		return "rate_limited"
	case ActionFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeLimitExceeded  = -32005
)

// Classify maps an RPC error to a retry action.
func Classify(err error) Action {
	if err == nil {
		return ActionRetry
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return ActionFatal
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return ActionRateLimited
		case httpErr.StatusCode == http.StatusUnauthorized, httpErr.StatusCode == http.StatusForbidden:
			return ActionFatal
		case httpErr.StatusCode >= 500:
			return ActionRetry
		case httpErr.StatusCode >= 400:
			return ActionFatal
		}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case codeParseError, codeInvalidRequest, codeMethodNotFound, codeInvalidParams:
			return ActionFatal
		case codeLimitExceeded:
			return ActionRateLimited
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests") {
		return ActionRateLimited
	}

	return ActionRetry
}
