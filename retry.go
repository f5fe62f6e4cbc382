package recall

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig controls transport-level retries. Retries live in the
// transport, not in the request/response layer: enabling them changes how
// the cached http.Client is built and nothing else.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, first attempt included.
	MaxAttempts int
	// BaseBackoff is the delay before the second attempt; later attempts
	// back off exponentially.
	BaseBackoff time.Duration
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
	// RetryPost opts non-idempotent methods into retries. Callers should
	// pair this with WithRequestID for server-side idempotency.
	RetryPost bool
}

func (r RetryConfig) normalized() RetryConfig {
	cfg := r
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 300 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return cfg
}

var errRetryableStatus = errors.New("recall: retryable status")

type retryTransport struct {
	base http.RoundTripper
	cfg  RetryConfig
}

// NewRetryTransport wraps a RoundTripper with exponential-backoff retries
// for transport failures and 429/5xx responses. Only idempotent methods are
// retried unless RetryPost is set. The final response, even a failing one,
// is delivered to the caller untouched.
func NewRetryTransport(base http.RoundTripper, cfg RetryConfig) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &retryTransport{base: base, cfg: cfg.normalized()}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.retryable(req) {
		return t.base.RoundTrip(req)
	}

	var last *http.Response
	err := retry.Do(
		func() error {
			attempt, err := t.clone(req)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := t.base.RoundTrip(attempt)
			if err != nil {
				return err
			}
			if last != nil {
				drain(last)
			}
			last = resp
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return errRetryableStatus
			}
			return nil
		},
		retry.Attempts(uint(t.cfg.MaxAttempts)),
		retry.Delay(t.cfg.BaseBackoff),
		retry.MaxDelay(t.cfg.MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(req.Context()),
	)
	if err != nil {
		// Out of attempts on a retryable status: hand the last response to
		// the caller so status dispatch still happens.
		if errors.Is(err, errRetryableStatus) && last != nil {
			return last, nil
		}
		if last != nil {
			drain(last)
		}
		return nil, err
	}
	return last, nil
}

func (t *retryTransport) retryable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodPut:
		return true
	default:
		return t.cfg.RetryPost
	}
}

// clone produces a fresh request per attempt; bodies built by the client are
// rewindable via GetBody.
func (t *retryTransport) clone(req *http.Request) (*http.Request, error) {
	attempt := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return attempt, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("recall: cannot retry request without rewindable body")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	attempt.Body = body
	return attempt, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
