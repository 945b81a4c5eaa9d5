package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codeberg.org/wexar/server/internal/llm"
)

// content shorter than this next to a provider error is not usable
const usableContentLength = 100

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeTerminal
)

// result of a single attempt. the loop driver only looks at kind;
// extracted and validation are kept for the repair pass.
type attemptOutcome struct {
	kind       outcomeKind
	result     Result
	err        *Error
	extracted  Extracted
	validation ValidationResult
}

func success(result Result) attemptOutcome {
	return attemptOutcome{kind: outcomeSuccess, result: result}
}

func retryable(err *Error) attemptOutcome {
	return attemptOutcome{kind: outcomeRetryable, err: err}
}

func terminal(err *Error) attemptOutcome {
	return attemptOutcome{kind: outcomeTerminal, err: err}
}

// content failures are the only retryable outcomes eligible for repair
func (o attemptOutcome) isContentFailure() bool {
	return o.kind == outcomeRetryable && o.err != nil && o.err.Kind == KindContent
}

// delay before attempt k+1: base * 2^k
func backoff(base time.Duration, attempt int) time.Duration {
	return base << attempt
}

// waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// maps a failed upstream call to an attempt outcome.
// parent is the request context; the call itself ran under a per-attempt deadline.
func classifyCallError(parent context.Context, err error, timeout time.Duration) attemptOutcome {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return terminal(newError(KindConfig, "upstream API key is not configured", err))
	}

	if parent.Err() != nil {
		return terminal(newError(KindCanceled, "request canceled", parent.Err()))
	}

	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return classifyStatus(statusErr)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return retryable(newError(KindUpstream, fmt.Sprintf("upstream timed out after %s", timeout), err))
	}

	return retryable(newError(KindUpstream, "connection to upstream failed", err))
}

func classifyStatus(statusErr *llm.StatusError) attemptOutcome {
	code := statusErr.StatusCode

	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e := newError(KindUpstream, fmt.Sprintf("upstream temporarily unavailable (%d)", code), statusErr)
		e.StatusCode = code
		return retryable(e)

	case http.StatusTooManyRequests:
		e := newError(KindRateLimit, "upstream rate limit exceeded, try again in a few minutes", statusErr)
		e.StatusCode = code
		return terminal(e)

	case http.StatusUnauthorized:
		e := newError(KindConfig, "upstream rejected the API key", statusErr)
		e.StatusCode = code
		return terminal(e)
	}

	e := newError(KindAPI, fmt.Sprintf("upstream API error (%d)", code), statusErr)
	e.StatusCode = code

	return terminal(e)
}

// best-effort guess at whether a provider error is a passing network problem.
// vendor messages are not a stable contract, so this only looks for broad hints.
func isTransientProviderError(pe *llm.ProviderError) bool {
	if code, ok := pe.Code.Int(); ok && code >= 500 {
		return true
	}

	msg := strings.ToLower(pe.Message)
	for _, hint := range []string{"connection", "network", "timeout", "timed out"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}

	return false
}

func hasUsableContent(content string) bool {
	return len(strings.TrimSpace(content)) > usableContentLength
}

// maps a provider error embedded in a 2xx response with unusable content
func classifyProviderError(pe *llm.ProviderError) attemptOutcome {
	message := pe.Message
	if message == "" {
		message = "generation failed"
	}

	e := newError(KindProvider, "provider error: "+message, pe)

	if isTransientProviderError(pe) {
		return retryable(e)
	}

	return terminal(e)
}
