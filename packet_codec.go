package kafunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// packetEncoder and packetDecoder are a minimal big-endian, length-prefixed
// codec, scoped only to what GroupMemberMetadata and GroupMemberAssignment
// need. The outer request/response framing and transport are the wire-codec
// concern spec.md §1 places out of scope; this inner codec is in scope
// because C6 is the component that must itself produce and parse these
// opaque "range" protocol blobs (spec.md §6: "serialized as nested
// length-prefixed blobs with version=0"). Modeled after the
// putInt16/putString/putArrayLength/getString family in the teacher's
// per-type encode/decode methods.
type packetEncoder struct {
	buf bytes.Buffer
}

func (pe *packetEncoder) putInt16(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	pe.buf.Write(b[:])
}

func (pe *packetEncoder) putInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	pe.buf.Write(b[:])
}

func (pe *packetEncoder) putString(s string) {
	pe.putInt16(int16(len(s)))
	pe.buf.WriteString(s)
}

func (pe *packetEncoder) putBytes(b []byte) {
	pe.putInt32(int32(len(b)))
	pe.buf.Write(b)
}

func (pe *packetEncoder) putArrayLength(n int) {
	pe.putInt32(int32(n))
}

func (pe *packetEncoder) bytes() []byte { return pe.buf.Bytes() }

type packetDecoder struct {
	buf []byte
	off int
}

func newPacketDecoder(b []byte) *packetDecoder { return &packetDecoder{buf: b} }

func (pd *packetDecoder) getInt16() (int16, error) {
	if pd.off+2 > len(pd.buf) {
		return 0, fmt.Errorf("kafunk: insufficient data to decode int16")
	}
	v := int16(binary.BigEndian.Uint16(pd.buf[pd.off:]))
	pd.off += 2
	return v, nil
}

func (pd *packetDecoder) getInt32() (int32, error) {
	if pd.off+4 > len(pd.buf) {
		return 0, fmt.Errorf("kafunk: insufficient data to decode int32")
	}
	v := int32(binary.BigEndian.Uint32(pd.buf[pd.off:]))
	pd.off += 4
	return v, nil
}

func (pd *packetDecoder) getString() (string, error) {
	n, err := pd.getInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", nil
	}
	if pd.off+int(n) > len(pd.buf) {
		return "", fmt.Errorf("kafunk: insufficient data to decode string")
	}
	s := string(pd.buf[pd.off : pd.off+int(n)])
	pd.off += int(n)
	return s, nil
}

func (pd *packetDecoder) getBytes() ([]byte, error) {
	n, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	if pd.off+int(n) > len(pd.buf) {
		return nil, fmt.Errorf("kafunk: insufficient data to decode bytes")
	}
	b := pd.buf[pd.off : pd.off+int(n)]
	pd.off += int(n)
	return b, nil
}

func (pd *packetDecoder) getArrayLength() (int, error) {
	n, err := pd.getInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("kafunk: invalid negative array length")
	}
	return int(n), nil
}
