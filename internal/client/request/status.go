package request

import "github.com/dmitrijs2005/agroassist/internal/common"

// Status is the lifecycle state of an attempt or controller.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Kind classifies a failed attempt.
type Kind int

const (
	// KindValidation: local checks failed, no call was made.
	KindValidation Kind = iota + 1
	// KindConnectivity: the server could not be reached or timed out.
	KindConnectivity
	// KindRejected: the server answered with a failure or an empty result.
	KindRejected
	// KindDecode: encoding or decoding failed unexpectedly.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnectivity:
		return "connectivity"
	case KindRejected:
		return "rejected"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return common.ErrValidation
	case KindConnectivity:
		return common.ErrConnectivity
	case KindRejected:
		return common.ErrServerRejection
	case KindDecode:
		return common.ErrDecode
	default:
		return nil
	}
}
