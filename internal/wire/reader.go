package wire

// Reader accumulates bytes and fds read off a Conn into complete
// Messages, refusing any whose declared length doesn't match what
// arrives — the read-side contract from the wire codec design.
type Reader struct {
	conn *Conn
	buf  []byte
	fds  []int
}

func NewReader(conn *Conn) *Reader {
	return &Reader{conn: conn}
}

// Next blocks until one full Message has been assembled, pulling more
// bytes/fds off the underlying Conn as needed.
func (r *Reader) Next() (Message, error) {
	for {
		if msg, ok, err := r.tryDecode(); err != nil || ok {
			return msg, err
		}
		chunk := make([]byte, 4096)
		n, fds, err := r.conn.ReadMsg(chunk)
		if err != nil {
			return Message{}, err
		}
		r.buf = append(r.buf, chunk[:n]...)
		r.fds = append(r.fds, fds...)
	}
}

func (r *Reader) tryDecode() (Message, bool, error) {
	if len(r.buf) < headerLen {
		return Message{}, false, nil
	}
	objectID, opcode, length, err := DecodeHeader(r.buf)
	if err != nil {
		return Message{}, false, err
	}
	if len(r.buf) < int(length) {
		return Message{}, false, nil
	}
	args := make([]byte, length-headerLen)
	copy(args, r.buf[headerLen:length])
	r.buf = r.buf[length:]

	// fds are consumed greedily and matched to the message that declares
	// them by the interface's opcode signature at dispatch time; the
	// reader itself only guarantees fds arrive no later than the bytes
	// that reference them, per the wire's ordering guarantee.
	fds := r.fds
	r.fds = nil

	return Message{ObjectID: objectID, Opcode: opcode, Args: args, FDs: fds}, true, nil
}
