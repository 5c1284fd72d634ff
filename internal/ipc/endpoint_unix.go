//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

const staleDialTimeout = 200 * time.Millisecond

// ResolveEndpoint returns the per-user unix socket under XDG_RUNTIME_DIR,
// or the temp dir when that is unset.
func ResolveEndpoint() (Endpoint, error) {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, fmt.Sprintf("%s-%d", AppName, os.Getuid()))
	return Endpoint{Network: "unix", Address: filepath.Join(dir, "ctl.sock")}, nil
}

// Listen binds the control socket with 0600 permissions. A leftover socket
// file is replaced only when nothing answers on it; otherwise Listen fails
// with ErrAlreadyRunning.
func Listen() (net.Listener, Endpoint, error) {
	ep, err := ResolveEndpoint()
	if err != nil {
		return nil, Endpoint{}, err
	}
	if err := os.MkdirAll(filepath.Dir(ep.Address), 0o700); err != nil {
		return nil, Endpoint{}, err
	}
	if err := removeStale(ep); err != nil {
		return nil, Endpoint{}, err
	}

	listener, err := net.Listen(ep.Network, ep.Address)
	if err != nil {
		return nil, Endpoint{}, err
	}
	if err := os.Chmod(ep.Address, 0o600); err != nil {
		listener.Close()
		return nil, Endpoint{}, err
	}
	return listener, ep, nil
}

func removeStale(ep Endpoint) error {
	if _, err := os.Lstat(ep.Address); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if conn, err := net.DialTimeout(ep.Network, ep.Address, staleDialTimeout); err == nil {
		conn.Close()
		return fmt.Errorf("%w on %s", ErrAlreadyRunning, ep.Address)
	}
	if err := os.Remove(ep.Address); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Cleanup removes the socket file. Missing files are not an error.
func Cleanup(ep Endpoint) error {
	if ep.Address == "" {
		return nil
	}
	if err := os.Remove(ep.Address); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
