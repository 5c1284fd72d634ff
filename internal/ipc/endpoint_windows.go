//go:build windows

package ipc

import (
	"fmt"
	"net"
)

const windowsAddress = "127.0.0.1:47832"

func ResolveEndpoint() (Endpoint, error) {
	return Endpoint{Network: "tcp", Address: windowsAddress}, nil
}

// Listen binds the loopback control port. It fails with ErrAlreadyRunning
// when something already answers there.
func Listen() (net.Listener, Endpoint, error) {
	ep, _ := ResolveEndpoint()
	listener, err := net.Listen(ep.Network, ep.Address)
	if err != nil {
		if conn, dialErr := net.DialTimeout(ep.Network, ep.Address, dialTimeout); dialErr == nil {
			conn.Close()
			return nil, Endpoint{}, fmt.Errorf("%w on %s", ErrAlreadyRunning, ep.Address)
		}
		return nil, Endpoint{}, err
	}
	return listener, ep, nil
}

// Cleanup is a no-op for TCP endpoints.
func Cleanup(Endpoint) error {
	return nil
}
