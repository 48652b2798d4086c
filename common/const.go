package common

import (
	"os"
	"strings"
)

// Default SAM bridge endpoint and protocol version window (spec §6).
const (
	DefaultSAMAddress = "127.0.0.1:7656"
	SAMMin            = "3.1"
	SAMMax            = "3.2"
)

// SAM_HOST and SAM_PORT mirror the teacher's environment-variable overrides
// (sam_host / sam_port). I2PConfig.Sam falls back to them, and Connect uses
// that when given an empty address; DefaultSAMAddress itself ignores them.
var (
	SAM_HOST = getEnv("sam_host", "127.0.0.1")
	SAM_PORT = getEnv("sam_port", "7656")
)

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// SessionStyle names the SAM session style used on SESSION CREATE / SESSION ADD.
type SessionStyle string

const (
	StyleStream  SessionStyle = "STREAM"
	StyleDatagram SessionStyle = "DATAGRAM"
	StyleRaw     SessionStyle = "RAW"
	StylePrimary SessionStyle = "PRIMARY"
)

// SignatureType enumerates the destination signature algorithms SAM supports,
// serialized as the uppercase SIGNATURE_TYPE token (spec §3).
type SignatureType string

const (
	SigDSASHA1               SignatureType = "DSA_SHA1"
	SigECDSASHA256P256       SignatureType = "ECDSA_SHA256_P256"
	SigECDSASHA384P384       SignatureType = "ECDSA_SHA384_P384"
	SigECDSASHA512P521       SignatureType = "ECDSA_SHA512_P521"
	SigEdDSASHA512Ed25519    SignatureType = "EdDSA_SHA512_Ed25519"
	SigRedDSASHA512Ed25519   SignatureType = "RedDSA_SHA512_Ed25519"
	SigDefault                             = SigEdDSASHA512Ed25519
)

// TransientDestination is the sentinel DESTINATION value meaning "let the
// bridge pick an ephemeral destination".
const TransientDestination = "TRANSIENT"

// SAM reply-line literals used to classify responses.
const (
	resultKey  = "RESULT"
	messageKey = "MESSAGE"
	resultOK   = "OK"
)
