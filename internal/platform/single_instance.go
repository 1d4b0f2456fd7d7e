// Package platform holds OS-facing helpers: data directory resolution and the
// process-wide writer lock.
package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another process already owns the event log.
var ErrAlreadyRunning = errors.New("another focuslog process owns the event log")

// WriterLock is held by the one process allowed to write the event log and
// project state. It binds a localhost port derived from the lock key, so the
// OS releases it even if the process dies.
type WriterLock struct {
	listener net.Listener
}

// AcquireWriterLock fails with ErrAlreadyRunning while another process holds the lock.
// Processes using different data directories pass different keys.
func AcquireWriterLock(key string) (*WriterLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(key))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlreadyRunning, err)
	}
	return &WriterLock{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil lock.
func (lock *WriterLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

func portFromName(key string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
