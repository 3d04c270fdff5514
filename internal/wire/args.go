package wire

import (
	"encoding/binary"
)

// ArgReader decodes argument values out of a message's Args payload in
// declaration order, pulling fds off the side-channel FDs slice as it
// encounters fd-typed arguments.
type ArgReader struct {
	buf    []byte
	off    int
	fds    []int
	fdOff  int
	failed bool
}

func NewArgReader(m Message) *ArgReader {
	return &ArgReader{buf: m.Args, fds: m.FDs}
}

func (r *ArgReader) fail() {
	r.failed = true
}

// Err returns a parse error if any read ran past the buffer.
func (r *ArgReader) Err() error {
	if r.failed {
		return &ErrProtocolParse{Reason: "argument decode ran past message bounds"}
	}
	return nil
}

func (r *ArgReader) need(n int) bool {
	if r.off+n > len(r.buf) {
		r.fail()
		return false
	}
	return true
}

func (r *ArgReader) Int32() int32 {
	if !r.need(4) {
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *ArgReader) Uint32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *ArgReader) Fixed() Fixed {
	return Fixed(r.Int32())
}

// ObjectID decodes an object-id argument (zero means "no object").
func (r *ArgReader) ObjectID() uint32 {
	return r.Uint32()
}

// NewID decodes a new-id argument: the client-allocated id a subsequent
// request is binding a freshly created object to.
func (r *ArgReader) NewID() uint32 {
	return r.Uint32()
}

func (r *ArgReader) String() string {
	n := r.Uint32()
	if n == 0 {
		return ""
	}
	strLen := int(n) - 1 // wire length includes the NUL terminator
	if !r.need(padded(int(n))) {
		return ""
	}
	s := string(r.buf[r.off : r.off+strLen])
	r.off += padded(int(n))
	return s
}

func (r *ArgReader) Array() []byte {
	n := int(r.Uint32())
	if !r.need(padded(n)) {
		return nil
	}
	data := make([]byte, n)
	copy(data, r.buf[r.off:r.off+n])
	r.off += padded(n)
	return data
}

// FD pulls the next fd off the side-channel. Returns -1 if none remain,
// which the caller must treat as a fatal protocol error (ErrProtocolParse):
// a declared fd argument with no matching SCM_RIGHTS payload.
func (r *ArgReader) FD() int {
	if r.fdOff >= len(r.fds) {
		r.fail()
		return -1
	}
	fd := r.fds[r.fdOff]
	r.fdOff++
	return fd
}

// padded rounds n up to the next multiple of 4, the wire's array/string
// padding rule.
func padded(n int) int {
	return (n + 3) &^ 3
}

// ArgWriter accumulates an event's or request's argument payload plus any
// fds it carries, for a subsequent Encode.
type ArgWriter struct {
	buf []byte
	fds []int
}

func NewArgWriter() *ArgWriter {
	return &ArgWriter{}
}

func (w *ArgWriter) Int32(v int32) *ArgWriter {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *ArgWriter) Uint32(v uint32) *ArgWriter {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *ArgWriter) Fixed(v Fixed) *ArgWriter {
	return w.Int32(int32(v))
}

func (w *ArgWriter) ObjectID(id uint32) *ArgWriter {
	return w.Uint32(id)
}

func (w *ArgWriter) NewID(id uint32) *ArgWriter {
	return w.Uint32(id)
}

func (w *ArgWriter) String(s string) *ArgWriter {
	n := len(s) + 1 // + NUL
	w.Uint32(uint32(n))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
	return w
}

func (w *ArgWriter) Array(data []byte) *ArgWriter {
	w.Uint32(uint32(len(data)))
	w.buf = append(w.buf, data...)
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
	return w
}

func (w *ArgWriter) FD(fd int) *ArgWriter {
	w.fds = append(w.fds, fd)
	return w
}

func (w *ArgWriter) Bytes() []byte {
	return w.buf
}

func (w *ArgWriter) FDs() []int {
	return w.fds
}
