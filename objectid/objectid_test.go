// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package objectid

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	seen := make(map[ID]bool)
	for range 1000 {
		id := New()
		require.False(t, id.IsZero())
		require.False(t, seen[id], "duplicate id %v", id)
		seen[id] = true
	}

	a, b := New(), New()
	assert.Equal(t, a[4:8], b[4:8], "fingerprint should be stable within a process")
	assert.WithinDuration(t, time.Now(), a.Time(), 2*time.Second)
}

func TestRoundTrip(t *testing.T) {
	for range 100 {
		id := New()
		s := id.String()
		require.Len(t, s, 2*Size)
		x, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, id, x)
		assert.Equal(t, id[:], x.Bytes())
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("0123456789abcdefABCDEF00")
	require.NoError(t, err)
	assert.Equal(t, ID{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0xab, 0xcd, 0xef, 0x00}, id)
	assert.Equal(t, "0123456789abcdefabcdef00", id.String())

	for _, s := range []string{
		"0123456789abcdefabcdef0g",
		"zz23456789abcdefabcdef00",
		"0123456789ab cdefabcdef0",
	} {
		id, err := Parse(s)
		assert.ErrorIs(t, err, ErrHex, s)
		assert.True(t, id.IsZero(), s)
	}
	for _, s := range []string{"", "0123", strings.Repeat("0", 26)} {
		id, err := Parse(s)
		assert.ErrorIs(t, err, ErrLength, s)
		assert.True(t, id.IsZero(), s)
	}

	assert.Panics(t, func() { MustParse("bad") })
}

func TestCompare(t *testing.T) {
	lo := MustParse("000000000000000000000001")
	hi := MustParse("000000010000000000000000")
	assert.Equal(t, -1, lo.Compare(hi))
	assert.Equal(t, 1, hi.Compare(lo))
	assert.Equal(t, 0, lo.Compare(lo))
	assert.True(t, lo.Less(hi))
	assert.False(t, hi.Less(lo))
	assert.True(t, Min().Less(lo))
	assert.True(t, hi.Less(Max()))
	assert.Equal(t, strings.Repeat("ff", Size), Max().String())
	assert.True(t, Min().IsZero())

	old := newAt(time.Unix(1000, 0))
	cur := newAt(time.Unix(2000, 0))
	assert.True(t, old.Less(cur))

	ids := []ID{Max(), cur, Min(), old}
	slices.SortFunc(ids, ID.Compare)
	assert.Equal(t, []ID{Min(), old, cur, Max()}, ids)
}

func TestText(t *testing.T) {
	id := New()
	b, err := id.MarshalText()
	require.NoError(t, err)
	var x ID
	require.NoError(t, x.UnmarshalText(b))
	assert.Equal(t, id, x)
	assert.Error(t, x.UnmarshalText([]byte("nope")))
	assert.True(t, x.IsZero())
}
