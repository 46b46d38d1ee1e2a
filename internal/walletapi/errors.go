package walletapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/STTM-NSU/wallet-client/internal/model"
)

type Kind int

const (
	KindNetwork Kind = iota + 1 // no HTTP response at all
	KindStatus                  // non-2xx status
	KindDecode                  // 2xx with a body that doesn't decode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

var (
	ErrNetwork = errors.New("wallet api network failure")
	ErrStatus  = errors.New("wallet api error status")
	ErrDecode  = errors.New("wallet api malformed response")
)

// Error is returned by every WalletService call that fails. Use errors.Is
// with ErrNetwork, ErrStatus or ErrDecode to branch on the kind, or
// errors.As to get the status code and the service's error body.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Response   *model.ErrorResponse
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s error", e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Response != nil && e.Response.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Response.Message)
		if len(e.Response.Details) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(e.Response.Details, "; "))
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}
