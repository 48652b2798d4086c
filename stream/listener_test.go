package stream

import (
	"net"
	"strings"
	"testing"

	"github.com/go-i2p/go-sam-client/common"
)

func TestListenerAccept(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		switch {
		case strings.HasPrefix(line, "STREAM ACCEPT"):
			conn.Write([]byte("STREAM STATUS RESULT=OK\n"))
			conn.Write([]byte("peer-dest FROM_PORT=0 TO_PORT=0\n"))
		}
		return ""
	})

	listener, err := Listen(session)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer listener.Close()

	conn, err := listener.Accept()
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	defer conn.Close()

	if conn.RemoteAddr().String() == "" {
		t.Error("RemoteAddr() is empty")
	}
}

func TestListenerAcceptEmptyDestination(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		switch {
		case strings.HasPrefix(line, "STREAM ACCEPT"):
			conn.Write([]byte("STREAM STATUS RESULT=OK\n"))
			conn.Write([]byte("\n"))
		}
		return ""
	})

	listener, err := Listen(session)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer listener.Close()

	_, err = listener.Accept()
	if err == nil {
		t.Fatal("expected error from Accept() on empty accept-destination line")
	}
	samErr, ok := err.(*common.SAMError)
	if !ok {
		t.Fatalf("error = %T, want *common.SAMError", err)
	}
	if samErr.Kind != common.KindKeyNotFound {
		t.Errorf("Kind = %v, want KindKeyNotFound", samErr.Kind)
	}
}

func TestListenerAcceptError(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		if strings.HasPrefix(line, "STREAM ACCEPT") {
			return "STREAM STATUS RESULT=I2P_ERROR MESSAGE=\"tunnel failed\"\n"
		}
		return ""
	})

	listener, err := Listen(session)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer listener.Close()

	_, err = listener.Accept()
	if err == nil {
		t.Fatal("expected error from Accept()")
	}
	samErr, ok := err.(*common.SAMError)
	if !ok {
		t.Fatalf("error = %T, want *common.SAMError", err)
	}
	if samErr.Kind != common.KindI2PError {
		t.Errorf("Kind = %v, want KindI2PError", samErr.Kind)
	}
}
