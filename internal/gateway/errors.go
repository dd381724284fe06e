package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// Reason classifies why a fetch failed.
type Reason string

const (
	// ReasonTransport covers DNS, connection, abort and timeout failures.
	ReasonTransport Reason = "transport"
	// ReasonStatus covers non-2xx responses, rate-limit rejections included.
	ReasonStatus Reason = "status"
	// ReasonInvalid covers 2xx responses whose body could not be decoded or failed validation.
	ReasonInvalid Reason = "invalid"
)

// FetchError is the single error kind returned by the gateway.
type FetchError struct {
	Op         string
	Account    string
	Reason     Reason
	StatusCode int
	Err        error
}

// Error renders the operation, account and reason, followed by the status code and cause when known.
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %q failed (%s", e.Op, e.Account, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying go-github or transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the Reason carried by err, or "" if err is not a FetchError.
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}

// classify turns an error returned by go-github into a FetchError.
func classify(op, account string, resp *github.Response, err error) *FetchError {
	fe := &FetchError{Op: op, Account: account, Err: err}
	if resp != nil && resp.Response != nil {
		fe.StatusCode = resp.StatusCode
	}

	var (
		errResp  *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &rateErr):
		fe.Reason = ReasonStatus
		if fe.StatusCode == 0 && rateErr.Response != nil {
			fe.StatusCode = rateErr.Response.StatusCode
		}
	case errors.As(err, &abuseErr):
		fe.Reason = ReasonStatus
		if fe.StatusCode == 0 && abuseErr.Response != nil {
			fe.StatusCode = abuseErr.Response.StatusCode
		}
	case errors.As(err, &errResp):
		fe.Reason = ReasonStatus
		if fe.StatusCode == 0 && errResp.Response != nil {
			fe.StatusCode = errResp.Response.StatusCode
		}
	case fe.StatusCode >= http.StatusOK && fe.StatusCode < http.StatusMultipleChoices:
		// go-github only returns a 2xx response alongside an error when decoding the body failed.
		fe.Reason = ReasonInvalid
	case fe.StatusCode != 0:
		fe.Reason = ReasonStatus
	default:
		fe.Reason = ReasonTransport
	}
	return fe
}
