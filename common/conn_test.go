package common

import (
	"bufio"
	"net"
	"strings"
	"testing"
)

// mockBridge starts a single-connection fake SAM bridge on 127.0.0.1 that
// replies to each received line via respond. It returns the listener address
// and a stop function.
func mockBridge(t *testing.T, respond func(line string) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start mock bridge: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := scanner.Text()
			reply := respond(line)
			if reply == "" {
				continue
			}
			if _, err := conn.Write([]byte(reply)); err != nil {
				return
			}
		}
	}()
	return ln.Addr().String()
}

func helloOK(line string) string {
	if strings.HasPrefix(line, "HELLO VERSION") {
		return "HELLO REPLY RESULT=OK VERSION=3.2\n"
	}
	return ""
}

func TestConnectPerformsHelloHandshake(t *testing.T) {
	addr := mockBridge(t, helloOK)

	conn, err := Connect(addr)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer conn.Close()
}

func TestConnectRejectsHelloError(t *testing.T) {
	addr := mockBridge(t, func(line string) string {
		if strings.HasPrefix(line, "HELLO VERSION") {
			return "HELLO REPLY RESULT=NOVERSION\n"
		}
		return ""
	})

	_, err := Connect(addr)
	if err == nil {
		t.Fatal("expected error for NOVERSION hello reply")
	}
	samErr, ok := err.(*SAMError)
	if !ok {
		t.Fatalf("error = %T, want *SAMError", err)
	}
	if samErr.Kind != KindInvalidMessage {
		t.Errorf("Kind = %v, want KindInvalidMessage", samErr.Kind)
	}
}

func TestConnectRejectsHelloMissingVersion(t *testing.T) {
	addr := mockBridge(t, func(line string) string {
		if strings.HasPrefix(line, "HELLO VERSION") {
			return "HELLO REPLY RESULT=OK\n"
		}
		return ""
	})

	_, err := Connect(addr)
	if err == nil {
		t.Fatal("expected error for HELLO reply missing VERSION")
	}
	samErr, ok := err.(*SAMError)
	if !ok {
		t.Fatalf("error = %T, want *SAMError", err)
	}
	if samErr.Kind != KindProtocol {
		t.Errorf("Kind = %v, want KindProtocol", samErr.Kind)
	}
}

func TestNamingLookup(t *testing.T) {
	addr := mockBridge(t, func(line string) string {
		switch {
		case strings.HasPrefix(line, "HELLO VERSION"):
			return "HELLO REPLY RESULT=OK VERSION=3.2\n"
		case strings.HasPrefix(line, "NAMING LOOKUP NAME=stats.i2p"):
			return "NAMING REPLY RESULT=OK NAME=stats.i2p VALUE=abcd1234\n"
		}
		return ""
	})

	conn, err := Connect(addr)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer conn.Close()

	got, err := conn.NamingLookup("stats.i2p")
	if err != nil {
		t.Fatalf("NamingLookup() error = %v", err)
	}
	if string(got) != "abcd1234" {
		t.Errorf("NamingLookup() = %q, want abcd1234", got)
	}
}

func TestNamingLookupKeyNotFound(t *testing.T) {
	addr := mockBridge(t, func(line string) string {
		switch {
		case strings.HasPrefix(line, "HELLO VERSION"):
			return "HELLO REPLY RESULT=OK VERSION=3.2\n"
		case strings.HasPrefix(line, "NAMING LOOKUP"):
			return "NAMING REPLY RESULT=KEY_NOT_FOUND NAME=nope.i2p\n"
		}
		return ""
	})

	conn, err := Connect(addr)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer conn.Close()

	_, err = conn.NamingLookup("nope.i2p")
	samErr, ok := err.(*SAMError)
	if !ok {
		t.Fatalf("error = %T, want *SAMError", err)
	}
	if samErr.Kind != KindKeyNotFound {
		t.Errorf("Kind = %v, want KindKeyNotFound", samErr.Kind)
	}
}
