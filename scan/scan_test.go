package scan

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
)

// fakeClamd answers one INSTREAM session per connection with reply.
func fakeClamd(t *testing.T, reply func(body []byte) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveInstream(conn, reply)
		}
	}()
	return "tcp://" + ln.Addr().String()
}

func serveInstream(conn net.Conn, reply func(body []byte) string) {
	defer conn.Close()
	rd := bufio.NewReader(conn)
	if _, err := rd.ReadString('\n'); err != nil {
		return
	}
	var body []byte
	for {
		var size uint32
		if err := binary.Read(rd, binary.BigEndian, &size); err != nil {
			return
		}
		if size == 0 {
			break
		}
		chunk := make([]byte, size)
		if _, err := io.ReadFull(rd, chunk); err != nil {
			return
		}
		body = append(body, chunk...)
	}
	_, _ = io.WriteString(conn, reply(body)+"\n")
}

func eicarReply(body []byte) string {
	if strings.Contains(string(body), "EICAR") {
		return "stream: Eicar-Test-Signature FOUND"
	}
	return "stream: OK"
}

func TestClamdScanner(t *testing.T) {
	s := NewClamdScanner(fakeClamd(t, eicarReply))
	ctx := context.Background()

	if err := s.Scan(ctx, strings.NewReader("plain jpeg bytes")); err != nil {
		t.Fatalf("clean file rejected: %v", err)
	}

	err := s.Scan(ctx, strings.NewReader("X5O!P%@AP EICAR test"))
	if !errors.Is(err, ErrInfected) {
		t.Fatalf("expected ErrInfected, got %v", err)
	}
	if !strings.Contains(err.Error(), "Eicar-Test-Signature") {
		t.Errorf("expected signature name in %v", err)
	}
}

func TestClamdScanner_Unreachable(t *testing.T) {
	s := NewClamdScanner("tcp://127.0.0.1:1")
	if err := s.Scan(context.Background(), strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unreachable clamd")
	}
}

func TestNoop(t *testing.T) {
	if err := (Noop{}).Scan(context.Background(), strings.NewReader("x")); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
