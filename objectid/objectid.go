// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package objectid implements 12-byte object identifiers.
//
// An ID is made of a 4-byte timestamp (seconds since the
// Unix epoch), a 4-byte process fingerprint and 4 random
// bytes, all big-endian. IDs compare byte-wise, so IDs
// generated in different seconds sort by creation time.
package objectid

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Size is the length of an ID in bytes.
const Size = 12

// ID is an object identifier.
// The zero value is not a valid generated ID.
type ID [Size]byte

// Errors returned by Parse.
var (
	ErrLength = errors.New("objectid: invalid string length")
	ErrHex    = errors.New("objectid: invalid hex character")
)

var (
	fpOnce sync.Once
	fp     uint32
)

// fingerprint identifies the current process.
func fingerprint() uint32 {
	fpOnce.Do(func() {
		host, _ := os.Hostname()
		h := xxhash.Sum64String(host + ":" + strconv.Itoa(os.Getpid()))
		fp = uint32(h) ^ uint32(h>>32) ^ random()
	})
	return fp
}

func random() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("objectid: crypto/rand failed: " + err.Error())
	}
	return binary.BigEndian.Uint32(b[:])
}

// New generates a new ID.
func New() ID { return newAt(time.Now()) }

func newAt(t time.Time) (id ID) {
	binary.BigEndian.PutUint32(id[0:], uint32(t.Unix()))
	binary.BigEndian.PutUint32(id[4:], fingerprint())
	binary.BigEndian.PutUint32(id[8:], random())
	return
}

// Parse decodes an ID from its hex representation.
// It returns the zero ID if s is not a valid encoding.
func Parse(s string) (ID, error) {
	var id ID
	if len(s) != 2*Size {
		return ID{}, ErrLength
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return ID{}, ErrHex
	}
	return id, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the lower-case hex representation of id.
func (id ID) String() string { return hex.EncodeToString(id[:]) }

// Bytes returns a copy of the bytes of id.
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// Time returns the timestamp stored in id.
func (id ID) Time() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[:4])), 0)
}

// Compare returns -1, 0 or +1 depending on whether id
// is less than, equal to or greater than other.
func (id ID) Compare(other ID) int { return bytes.Compare(id[:], other[:]) }

// Less returns whether id sorts before other.
func (id ID) Less(other ID) bool { return id.Compare(other) < 0 }

// IsZero returns whether id is the zero ID.
func (id ID) IsZero() bool { return id == ID{} }

// Min returns the smallest ID.
func Min() ID { return ID{} }

// Max returns the largest ID.
func Max() (id ID) {
	for i := range id {
		id[i] = 0xff
	}
	return
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	x, err := Parse(string(b))
	*id = x
	return err
}
