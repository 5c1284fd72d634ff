package ui

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/ipc"
)

const ipcReplyTimeout = 2 * time.Second

type ipcMsg struct {
	cmd   string
	reply chan ipcReply
}

type ipcReply struct {
	ok   bool
	data string
	err  string
}

type ipcReadyMsg struct {
	server *ipcServer
	err    error
}

type ipcClosedMsg struct{}

// ipcServer accepts one command line per connection and hands it to the
// bubbletea loop, which answers on the reply channel.
type ipcServer struct {
	listener net.Listener
	endpoint ipc.Endpoint
	log      zerolog.Logger

	messages chan ipcMsg
	done     chan struct{}
	once     sync.Once
}

func newIPCServer(log zerolog.Logger) (*ipcServer, error) {
	listener, ep, err := ipc.Listen()
	if err != nil {
		return nil, fmt.Errorf("control socket: %w", err)
	}
	s := &ipcServer{
		listener: listener,
		endpoint: ep,
		log:      log,
		messages: make(chan ipcMsg),
		done:     make(chan struct{}),
	}
	go s.serve()
	log.Debug().Str("address", ep.Address).Msg("control socket listening")
	return s, nil
}

func (s *ipcServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.log.Warn().Err(err).Msg("control socket accept failed")
				s.Close()
			}
			return
		}
		go s.handle(conn)
	}
}

func (s *ipcServer) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(2 * ipcReplyTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return
	}

	reply := make(chan ipcReply, 1)
	select {
	case s.messages <- ipcMsg{cmd: line, reply: reply}:
	case <-s.done:
		return
	case <-time.After(ipcReplyTimeout):
		writeIPCReply(conn, ipcReply{err: "busy"})
		return
	}

	select {
	case r := <-reply:
		writeIPCReply(conn, r)
	case <-s.done:
		// QUIT answers before the server closes.
		select {
		case r := <-reply:
			writeIPCReply(conn, r)
		default:
		}
	case <-time.After(ipcReplyTimeout):
		writeIPCReply(conn, ipcReply{err: "timeout"})
	}
}

func (s *ipcServer) Close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.listener.Close()
		if err := ipc.Cleanup(s.endpoint); err != nil {
			s.log.Debug().Err(err).Msg("control socket cleanup failed")
		}
	})
}

func writeIPCReply(conn net.Conn, r ipcReply) {
	_, _ = fmt.Fprintln(conn, formatIPCReply(r))
}

func formatIPCReply(r ipcReply) string {
	switch {
	case !r.ok:
		msg := r.err
		if msg == "" {
			msg = "failed"
		}
		return "ERR " + msg
	case r.data == "":
		return "OK"
	default:
		return r.data
	}
}

func parseIPCCommand(raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	if cmd == "" {
		return "", errors.New("empty command")
	}
	return cmd, nil
}

func sendIPCReply(ch chan ipcReply, reply ipcReply) {
	if ch == nil {
		return
	}
	select {
	case ch <- reply:
	case <-time.After(200 * time.Millisecond):
	}
}
