package wire

import (
	"net"

	"golang.org/x/sys/unix"
)

// softFlushThreshold is the buffered-byte watermark past which Writer
// flushes proactively instead of waiting for an explicit FlushBoundary —
// keeps a chatty client (many small events in one dispatch fan-out) from
// growing the output buffer unboundedly between boundaries.
const softFlushThreshold = 32 * 1024

// maxQueuedFDs bounds how many fds a Writer may hold buffered and unsent,
// the per-client fd quota mentioned for resource ownership.
const maxQueuedFDs = 256

// Conn is the raw byte+fd duplex transport under a client connection: an
// AF_UNIX SOCK_STREAM, accessed through its *net.UnixConn for SCM_RIGHTS.
type Conn struct {
	uc *net.UnixConn

	writeBuf []byte
	writeFDs []int
}

func NewConn(uc *net.UnixConn) *Conn {
	return &Conn{uc: uc}
}

// Enqueue appends one encoded message's bytes and fds atomically: a
// reader can never observe the bytes of an event without its fds, or vice
// versa, because both are appended together before any Flush runs.
func (c *Conn) Enqueue(encoded []byte, fds []int) error {
	if len(c.writeFDs)+len(fds) > maxQueuedFDs {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	c.writeBuf = append(c.writeBuf, encoded...)
	c.writeFDs = append(c.writeFDs, fds...)
	if len(c.writeBuf) >= softFlushThreshold {
		return c.Flush()
	}
	return nil
}

// Flush writes all buffered bytes and fds in a single sendmsg call (or as
// few as the kernel needs), clearing the buffers on success.
func (c *Conn) Flush() error {
	if len(c.writeBuf) == 0 && len(c.writeFDs) == 0 {
		return nil
	}
	var oob []byte
	if len(c.writeFDs) > 0 {
		oob = unix.UnixRights(c.writeFDs...)
	}
	n, _, err := c.uc.WriteMsgUnix(c.writeBuf, oob, nil)
	if err != nil {
		return err
	}
	c.writeBuf = c.writeBuf[n:]
	c.writeFDs = c.writeFDs[:0]
	return nil
}

// ReadMsg reads one kernel datagram's worth of bytes and any fds it
// carried. The caller accumulates bytes across calls until a full message
// header's declared length is available.
func (c *Conn) ReadMsg(buf []byte) (n int, fds []int, err error) {
	oob := make([]byte, unix.CmsgSpace(maxQueuedFDs*4))
	n, oobn, _, _, err := c.uc.ReadMsgUnix(buf, oob)
	if err != nil {
		return n, nil, err
	}
	if oobn > 0 {
		scms, parseErr := unix.ParseSocketControlMessage(oob[:oobn])
		if parseErr == nil {
			for _, scm := range scms {
				rights, rErr := unix.ParseUnixRights(&scm)
				if rErr == nil {
					fds = append(fds, rights...)
				}
			}
		}
	}
	return n, fds, nil
}

func (c *Conn) Close() error {
	return c.uc.Close()
}
