// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package der implements a minimal [DER] tag/length/value encoder.
//
// Only definite-length encodings are produced. Lengths below 128 use the
// short form; longer values use the long form, a leading byte 0x80|n followed
// by n big-endian length octets in the minimum number of octets.
//
// [DER]: https://www.itu.int/rec/T-REC-X.690
package der

import (
	"encoding/asn1"
	"errors"
)

// Universal class tags used by the encoders in this package.
const (
	TagBoolean          byte = 0x01
	TagInteger          byte = 0x02
	TagOctetString      byte = 0x04
	TagNull             byte = 0x05
	TagObjectIdentifier byte = 0x06
	TagSequence         byte = 0x30 // constructed
)

var (
	// ErrNegativeLength indicates that a negative content length was requested.
	ErrNegativeLength = errors.New("der: negative length")

	// ErrInvalidOID indicates an object identifier with fewer than two arcs
	// or an out of range leading arc.
	ErrInvalidOID = errors.New("der: invalid object identifier")
)

// lengthSize returns the number of octets the length field occupies.
func lengthSize(length int) int {
	if length < 0x80 {
		return 1
	}

	n := 1
	for ; length > 0; n++ {
		length >>= 8
	}
	return n
}

// AppendLength appends the definite-length encoding of length to dst.
func AppendLength(dst []byte, length int) []byte {
	if length < 0 {
		panic(ErrNegativeLength)
	}

	if length < 0x80 {
		return append(dst, byte(length))
	}

	n := lengthSize(length) - 1
	dst = append(dst, 0x80|byte(n))
	for i := n; i > 0; i-- {
		dst = append(dst, byte(length>>(8*(i-1))))
	}
	return dst
}

// TLV encodes a single element with the given identifier octet. The content
// is the concatenation of the supplied parts, which lets constructed types
// be built from already encoded children.
func TLV(tag byte, content ...[]byte) []byte {
	size := 0
	for _, c := range content {
		size += len(c)
	}

	out := make([]byte, 0, 1+lengthSize(size)+size)
	out = append(out, tag)
	out = AppendLength(out, size)
	for _, c := range content {
		out = append(out, c...)
	}
	return out
}

// Sequence encodes a SEQUENCE of already encoded elements.
func Sequence(elements ...[]byte) []byte { return TLV(TagSequence, elements...) }

// Boolean encodes a BOOLEAN. DER requires 0xFF for true.
func Boolean(v bool) []byte {
	if v {
		return TLV(TagBoolean, []byte{0xff})
	}
	return TLV(TagBoolean, []byte{0x00})
}

// Null encodes the NULL value.
func Null() []byte { return TLV(TagNull) }

// OctetString encodes an OCTET STRING.
func OctetString(b []byte) []byte { return TLV(TagOctetString, b) }

// Integer encodes an INTEGER in minimal two's complement form.
func Integer(v int64) []byte {
	n := 1
	for i := v; i > 127 || i < -128; i >>= 8 {
		n++
	}

	content := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		content[i] = byte(v)
		v >>= 8
	}
	return TLV(TagInteger, content)
}

// ObjectIdentifier encodes an OBJECT IDENTIFIER.
func ObjectIdentifier(oid asn1.ObjectIdentifier) ([]byte, error) {
	if len(oid) < 2 || oid[0] < 0 || oid[0] > 2 || oid[1] < 0 || (oid[0] < 2 && oid[1] >= 40) {
		return nil, ErrInvalidOID
	}

	content := appendBase128(nil, oid[0]*40+oid[1])
	for _, arc := range oid[2:] {
		if arc < 0 {
			return nil, ErrInvalidOID
		}
		content = appendBase128(content, arc)
	}
	return TLV(TagObjectIdentifier, content), nil
}

// appendBase128 appends v as a base-128 big-endian sequence with the
// continuation bit set on every octet but the last.
func appendBase128(dst []byte, v int) []byte {
	n := 1
	for i := v; i > 127; i >>= 7 {
		n++
	}

	for i := n - 1; i >= 0; i-- {
		b := byte(v>>(7*i)) & 0x7f
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
