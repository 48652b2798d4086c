package common

import (
	"fmt"

	"github.com/samber/oops"
)

// ErrorKind is the typed SAM error taxonomy from spec §7. Every verified
// reply that does not carry RESULT=OK is turned into a *SAMError carrying
// one of these, so callers can use errors.As against SAMError and switch on
// its Kind field.
type ErrorKind int

const (
	// KindIO covers any underlying TCP failure: connect refused, EOF, reset.
	KindIO ErrorKind = iota
	// KindProtocol covers malformed replies, missing fields, unexpected tags.
	KindProtocol
	// KindUnresolvableAddress covers a host:port that resolved to nothing usable.
	KindUnresolvableAddress
	KindCantReachPeer
	KindKeyNotFound
	KindPeerNotFound
	KindDuplicatedDest
	KindInvalidKey
	KindInvalidID
	KindTimeout
	KindI2PError
	KindInvalidMessage
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindProtocol:
		return "ProtocolError"
	case KindUnresolvableAddress:
		return "UnresolvableAddress"
	case KindCantReachPeer:
		return "SamCantReachPeer"
	case KindKeyNotFound:
		return "SamKeyNotFound"
	case KindPeerNotFound:
		return "SamPeerNotFound"
	case KindDuplicatedDest:
		return "SamDuplicatedDest"
	case KindInvalidKey:
		return "SamInvalidKey"
	case KindInvalidID:
		return "SamInvalidId"
	case KindTimeout:
		return "SamTimeout"
	case KindI2PError:
		return "SamI2PError"
	case KindInvalidMessage:
		return "SamInvalidMessage"
	default:
		return "Unknown"
	}
}

// SAMError is the concrete type behind every error this package returns.
// Message carries the bridge's MESSAGE field for Sam* kinds (empty when the
// reply had none). Io and ProtocolError errors built by this package leave
// Message empty and carry their description in Err, an oops error that for
// Io wraps the underlying transport error; Err is exposed through Unwrap so
// errors.Is/As still reach it.
type SAMError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SAMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SAMError) Unwrap() error { return e.Err }

func newSAMError(kind ErrorKind, message string) *SAMError {
	return &SAMError{Kind: kind, Message: message}
}

// resultToKind is the exhaustive RESULT -> error-kind table from spec §4.2.
var resultToKind = map[string]ErrorKind{
	"CANT_REACH_PEER": KindCantReachPeer,
	"KEY_NOT_FOUND":   KindKeyNotFound,
	"PEER_NOT_FOUND":  KindPeerNotFound,
	"DUPLICATED_DEST": KindDuplicatedDest,
	"INVALID_KEY":     KindInvalidKey,
	"INVALID_ID":      KindInvalidID,
	"TIMEOUT":         KindTimeout,
	"I2P_ERROR":       KindI2PError,
}

// verifyResponse inspects a parsed reply's RESULT field (absent means OK) and
// returns nil on success or a *SAMError carrying the mapped kind and MESSAGE
// otherwise. Any RESULT not in the table maps to KindInvalidMessage, per §4.2.
func verifyResponse(fields map[string]string) error {
	result, ok := fields[resultKey]
	if !ok || result == resultOK {
		return nil
	}
	message := fields[messageKey]
	if kind, known := resultToKind[result]; known {
		return newSAMError(kind, message)
	}
	return newSAMError(KindInvalidMessage, message)
}

// protocolErrorf builds a ProtocolError-kind SAMError for malformed replies.
func protocolErrorf(format string, args ...interface{}) error {
	return &SAMError{Kind: KindProtocol, Err: oops.Errorf(format, args...)}
}

// ioErrorf wraps an underlying transport failure as a KindIO SAMError while
// preserving the original error in the chain.
func ioErrorf(cause error, format string, args ...interface{}) error {
	return &SAMError{Kind: KindIO, Err: oops.Wrapf(cause, format, args...)}
}
