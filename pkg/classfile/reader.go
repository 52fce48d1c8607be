package classfile

import (
	"encoding/binary"
	"io"
)

// reader wraps an io.Reader with big-endian primitive reads, following
// JVMS §4's u1/u2/u4 terminology. All multi-byte reads are big-endian.
type reader struct {
	r io.Reader
}

func newReader(r io.Reader) *reader { return &reader{r: r} }

func (r *reader) u1() (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, errReadFail(err)
	}
	return buf[0], nil
}

func (r *reader) u2() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, errReadFail(err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (r *reader) u4() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, errReadFail(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (r *reader) i1() (int8, error) {
	v, err := r.u1()
	return int8(v), err
}

func (r *reader) i2() (int16, error) {
	v, err := r.u2()
	return int16(v), err
}

func (r *reader) i4() (int32, error) {
	v, err := r.u4()
	return int32(v), err
}

func (r *reader) bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errReadFail(err)
	}
	return buf, nil
}

// atEOF reports whether the next read is at a clean EOF boundary, consuming
// nothing on success.
func atEOF(r io.Reader) (bool, error) {
	var buf [1]byte
	n, err := r.Read(buf[:])
	if n > 0 {
		return false, errUnexpectedData()
	}
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, errReadFail(err)
	}
	return false, nil
}
