package stream

import (
	"bufio"
	"net"
	"strings"
	"testing"
)

// multiBridge starts a fake SAM bridge accepting any number of connections,
// each served by its own goroutine running respond against every line it
// receives. Needed because a single logical test (session create + naming
// lookup + STREAM CONNECT/ACCEPT) spans more than one physical socket.
func multiBridge(t *testing.T, respond func(conn net.Conn, line string) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start mock bridge: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				scanner := bufio.NewScanner(c)
				for scanner.Scan() {
					reply := respond(c, scanner.Text())
					if reply == "" {
						continue
					}
					if _, err := c.Write([]byte(reply)); err != nil {
						return
					}
				}
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func helloAndSessionOK(dest string) func(conn net.Conn, line string) string {
	return func(conn net.Conn, line string) string {
		switch {
		case strings.HasPrefix(line, "HELLO VERSION"):
			return "HELLO REPLY RESULT=OK VERSION=3.2\n"
		case strings.HasPrefix(line, "SESSION CREATE"):
			return "SESSION STATUS RESULT=OK DESTINATION=" + dest + "\n"
		case strings.HasPrefix(line, "NAMING LOOKUP NAME=ME"):
			return "NAMING REPLY RESULT=OK NAME=ME VALUE=" + dest + "-pub\n"
		}
		return ""
	}
}
