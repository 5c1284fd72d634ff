// Package ipc locates and dials the control socket a running TUI listens on.
package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// AppName namespaces the socket directory.
const AppName = "lofigirl-terminal"

const dialTimeout = 500 * time.Millisecond

// ErrAlreadyRunning is returned by Listen when another instance answers on
// the endpoint.
var ErrAlreadyRunning = errors.New("another instance is already listening")

// Endpoint is a dialable control socket address.
type Endpoint struct {
	Network string
	Address string
}

// Send writes one command line to the endpoint and returns the reply data.
// "OK" yields an empty string; "ERR <msg>" becomes an error.
func Send(ep Endpoint, command string) (string, error) {
	conn, err := net.DialTimeout(ep.Network, ep.Address, dialTimeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(dialTimeout))
	if _, err := fmt.Fprintln(conn, command); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "ERR ") {
		return "", errors.New(strings.TrimPrefix(line, "ERR "))
	}
	if line == "OK" {
		return "", nil
	}
	return line, nil
}

// SendCommand resolves the default endpoint and sends command to it.
func SendCommand(command string) (string, error) {
	ep, err := ResolveEndpoint()
	if err != nil {
		return "", err
	}
	return Send(ep, command)
}
