//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type unixBackend struct {
	inFd int
	buf  []byte
}

// NewBackend returns a poll-based Backend reading from in
func NewBackend(in *os.File) Backend {
	return &unixBackend{
		inFd: int(in.Fd()),
		buf:  make([]byte, 256),
	}
}

func (b *unixBackend) Read(timeout time.Duration) ([]byte, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	for {
		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			return nil, nil // Timeout
		}

		rn, err := unix.Read(b.inFd, b.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}

		if rn == 0 {
			return nil, io.EOF
		}

		// Return copy of data
		ret := make([]byte, rn)
		copy(ret, b.buf[:rn])
		return ret, nil
	}
}
