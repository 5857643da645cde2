package billing

import "errors"

type Kind string

const (
	KindAuth           Kind = "auth_error"
	KindNotFound       Kind = "not_found"
	KindIncomplete     Kind = "incomplete_subscription"
	KindGateway        Kind = "gateway_error"
	KindReconciliation Kind = "reconciliation_error"
)

// Error is the failure returned by every billing operation. Kind is stable and
// machine readable; Message is meant for people.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrAuth           = &Error{Kind: KindAuth}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrIncomplete     = &Error{Kind: KindIncomplete}
	ErrGateway        = &Error{Kind: KindGateway}
	ErrReconciliation = &Error{Kind: KindReconciliation}

	// ErrNoRecord is returned by a Ledger when the user has no row.
	ErrNoRecord = errors.New("subscription record not found")
)

func AuthError(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func NotFoundError(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func IncompleteSubscriptionError() *Error {
	return &Error{
		Kind:    KindIncomplete,
		Message: "subscription setup is incomplete, please contact support",
	}
}

func GatewayError(err error) *Error {
	return &Error{Kind: KindGateway, Message: UpstreamMessage(err), Err: err}
}

func ReconciliationError(err error) *Error {
	return &Error{Kind: KindReconciliation, Message: UpstreamMessage(err), Err: err}
}

// UpstreamMessager is implemented by gateway errors that carry a cleaner
// human message than their Error() string.
type UpstreamMessager interface {
	UpstreamMessage() string
}

func UpstreamMessage(err error) string {
	if err == nil {
		return ""
	}
	var um UpstreamMessager
	if errors.As(err, &um) && um.UpstreamMessage() != "" {
		return um.UpstreamMessage()
	}
	return err.Error()
}

// KindOf returns the kind of a billing error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
