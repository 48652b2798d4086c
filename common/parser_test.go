package common

import "testing"

func TestParseReplySimple(t *testing.T) {
	fields, err := parseReply("HELLO REPLY RESULT=OK VERSION=3.1\n", helloReplyTag)
	if err != nil {
		t.Fatalf("parseReply() error = %v", err)
	}
	if fields["RESULT"] != "OK" {
		t.Errorf("RESULT = %q, want OK", fields["RESULT"])
	}
	if fields["VERSION"] != "3.1" {
		t.Errorf("VERSION = %q, want 3.1", fields["VERSION"])
	}
}

func TestParseReplyQuotedValue(t *testing.T) {
	fields, err := parseReply(`SESSION STATUS RESULT=I2P_ERROR MESSAGE="tunnel build failed"`+"\n", sessionStatusTag)
	if err != nil {
		t.Fatalf("parseReply() error = %v", err)
	}
	if fields["MESSAGE"] != "tunnel build failed" {
		t.Errorf("MESSAGE = %q, want %q", fields["MESSAGE"], "tunnel build failed")
	}
}

func TestParseReplyMissingNewline(t *testing.T) {
	_, err := parseReply("HELLO REPLY RESULT=OK", helloReplyTag)
	if err == nil {
		t.Fatal("expected error for reply missing trailing newline")
	}
}

func TestParseReplyWrongTag(t *testing.T) {
	_, err := parseReply("SESSION STATUS RESULT=OK\n", helloReplyTag)
	if err == nil {
		t.Fatal("expected error for mismatched tag")
	}
}

func TestParseReplyUnterminatedQuote(t *testing.T) {
	_, err := parseReply("HELLO REPLY RESULT=OK MESSAGE=\"oops\n", helloReplyTag)
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestParseReplyMalformedPair(t *testing.T) {
	_, err := parseReply("HELLO REPLY RESULT\n", helloReplyTag)
	if err == nil {
		t.Fatal("expected error for pair with no '='")
	}
}

func TestTokenizeHonorsQuotedSpaces(t *testing.T) {
	tokens, err := tokenize(`NAME=foo VALUE="has spaces here"`)
	if err != nil {
		t.Fatalf("tokenize() error = %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("tokenize() returned %d tokens, want 2: %v", len(tokens), tokens)
	}
	if tokens[1] != `VALUE="has spaces here"` {
		t.Errorf("tokens[1] = %q", tokens[1])
	}
}

func TestVerifyResponseOK(t *testing.T) {
	if err := verifyResponse(map[string]string{"RESULT": "OK"}); err != nil {
		t.Errorf("verifyResponse() error = %v, want nil", err)
	}
	if err := verifyResponse(map[string]string{}); err != nil {
		t.Errorf("verifyResponse() with no RESULT field error = %v, want nil", err)
	}
}

func TestVerifyResponseKnownErrors(t *testing.T) {
	cases := map[string]ErrorKind{
		"CANT_REACH_PEER": KindCantReachPeer,
		"KEY_NOT_FOUND":   KindKeyNotFound,
		"PEER_NOT_FOUND":  KindPeerNotFound,
		"DUPLICATED_DEST": KindDuplicatedDest,
		"INVALID_KEY":     KindInvalidKey,
		"INVALID_ID":      KindInvalidID,
		"TIMEOUT":         KindTimeout,
		"I2P_ERROR":       KindI2PError,
	}
	for result, wantKind := range cases {
		err := verifyResponse(map[string]string{"RESULT": result, "MESSAGE": "boom"})
		samErr, ok := err.(*SAMError)
		if !ok {
			t.Fatalf("verifyResponse(%q) returned %T, want *SAMError", result, err)
		}
		if samErr.Kind != wantKind {
			t.Errorf("verifyResponse(%q).Kind = %v, want %v", result, samErr.Kind, wantKind)
		}
		if samErr.Message != "boom" {
			t.Errorf("verifyResponse(%q).Message = %q, want boom", result, samErr.Message)
		}
	}
}

func TestVerifyResponseUnknownResultDefaultsToInvalidMessage(t *testing.T) {
	err := verifyResponse(map[string]string{"RESULT": "SOMETHING_NEW"})
	samErr, ok := err.(*SAMError)
	if !ok {
		t.Fatalf("verifyResponse() returned %T, want *SAMError", err)
	}
	if samErr.Kind != KindInvalidMessage {
		t.Errorf("Kind = %v, want KindInvalidMessage", samErr.Kind)
	}
}
