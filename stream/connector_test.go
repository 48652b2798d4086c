package stream

import (
	"net"
	"strings"
	"testing"

	"github.com/go-i2p/go-sam-client/common"
)

func newTestSession(t *testing.T, dest string, extra func(conn net.Conn, line string) string) *common.Session {
	t.Helper()
	base := helloAndSessionOK(dest)
	addr := multiBridge(t, func(conn net.Conn, line string) string {
		if reply := base(conn, line); reply != "" {
			return reply
		}
		return extra(conn, line)
	})

	session, err := common.NewTransientSession(addr, "test-nick", common.StyleStream, common.DefaultOptions())
	if err != nil {
		t.Fatalf("NewTransientSession() error = %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestConnectToAddr(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		if strings.HasPrefix(line, "STREAM CONNECT") {
			return "STREAM STATUS RESULT=OK\n"
		}
		return ""
	})

	stream, err := ConnectToAddr(session, common.I2PAddr("peer-dest"))
	if err != nil {
		t.Fatalf("ConnectToAddr() error = %v", err)
	}
	defer stream.Close()

	if stream.RemoteAddr().String() == "" {
		t.Error("RemoteAddr() is empty")
	}
}

func TestConnectToAddrCantReachPeer(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		if strings.HasPrefix(line, "STREAM CONNECT") {
			return "STREAM STATUS RESULT=CANT_REACH_PEER\n"
		}
		return ""
	})

	_, err := ConnectToAddr(session, common.I2PAddr("peer-dest"))
	if err == nil {
		t.Fatal("expected error for CANT_REACH_PEER")
	}
}

func TestConnectResolvesName(t *testing.T) {
	session := newTestSession(t, "local-dest", func(conn net.Conn, line string) string {
		switch {
		case strings.HasPrefix(line, "NAMING LOOKUP NAME=example.i2p"):
			return "NAMING REPLY RESULT=OK NAME=example.i2p VALUE=resolved-dest\n"
		case strings.HasPrefix(line, "STREAM CONNECT"):
			return "STREAM STATUS RESULT=OK\n"
		}
		return ""
	})

	stream, err := Connect(session, "example.i2p")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer stream.Close()
}
