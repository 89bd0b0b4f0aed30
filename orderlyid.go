//
//  Copyright 2024 OrderlyKit, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package orderlyid

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// Field widths of the identity schema, most significant first.
const (
	TimeBits   = 48
	FlagsBits  = 8
	TenantBits = 16
	SeqBits    = 12
	ShardBits  = 16
	RandomBits = 60
)

// Upper bounds of the variable-width fields.
const (
	MaxTime   = 1<<TimeBits - 1
	MaxSeq    = 1<<SeqBits - 1
	MaxRandom = 1<<RandomBits - 1
)

const (
	// Size of the binary value in bytes.
	Size = 20
	// EncodedSize of the payload in characters.
	EncodedSize = 32
)

// Flags field layout: 4 version bits, the privacy bit, 3 reserved bits.
const (
	// CurrentVersion of the identity schema, carried in the 4 low
	// flag bits of every allocated identifier.
	CurrentVersion uint8 = 1

	// FlagPrivacy marks identifiers whose timestamp was truncated to a
	// coarse bucket so that the exact allocation time is not leaked.
	FlagPrivacy uint8 = 0x10

	flagVersionMask uint8 = 0x0f
)

// Epoch is the zero point of the ⟨𝒕⟩ timestamp fraction.
var Epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

const epochMillis = 1577836800000

// UID is the 160-bit identifier value. The binary value is the sole
// source of truth, the text encoding is a derived, reversible
// representation. UIDs are comparable and sort byte-wise.
type UID [Size]byte

// Fields is the unpacked view of a UID.
type Fields struct {
	// Time is milliseconds since Epoch, 48 bit.
	Time uint64
	// Flags is the version, privacy and reserved bits.
	Flags uint8
	// Tenant is the namespace identifier, zero means "no tenant".
	Tenant uint16
	// Seq is the per-millisecond sequence, 12 bit.
	Seq uint16
	// Shard is the routing hint, opaque to the codec.
	Shard uint16
	// Random is 60 bits of entropy.
	Random uint64
}

// Pack assembles the six fields into the 160-bit value. A field value
// exceeding its width fails with ErrFieldOverflow before packing.
func Pack(f Fields) (UID, error) {
	var uid UID
	switch {
	case f.Time > MaxTime:
		return uid, fmt.Errorf("timestamp %d exceeds %d bits: %w", f.Time, TimeBits, ErrFieldOverflow)
	case f.Seq > MaxSeq:
		return uid, fmt.Errorf("sequence %d exceeds %d bits: %w", f.Seq, SeqBits, ErrFieldOverflow)
	case f.Random > MaxRandom:
		return uid, fmt.Errorf("random %d exceeds %d bits: %w", f.Random, RandomBits, ErrFieldOverflow)
	}

	putBits(uid[:], 0, TimeBits, f.Time)
	putBits(uid[:], 48, FlagsBits, uint64(f.Flags))
	putBits(uid[:], 56, TenantBits, uint64(f.Tenant))
	putBits(uid[:], 72, SeqBits, uint64(f.Seq))
	putBits(uid[:], 84, ShardBits, uint64(f.Shard))
	putBits(uid[:], 100, RandomBits, f.Random)
	return uid, nil
}

// Unpack splits the 160-bit value back into its fields.
func Unpack(uid UID) Fields {
	return Fields{
		Time:   getBits(uid[:], 0, TimeBits),
		Flags:  uint8(getBits(uid[:], 48, FlagsBits)),
		Tenant: uint16(getBits(uid[:], 56, TenantBits)),
		Seq:    uint16(getBits(uid[:], 72, SeqBits)),
		Shard:  uint16(getBits(uid[:], 84, ShardBits)),
		Random: getBits(uid[:], 100, RandomBits),
	}
}

//------------------------------------------------------------------------------
//
// Lenses
//
//------------------------------------------------------------------------------

// Millis returns the ⟨𝒕⟩ fraction, milliseconds since Epoch.
func Millis(uid UID) uint64 { return getBits(uid[:], 0, TimeBits) }

// Time returns the ⟨𝒕⟩ fraction as wall-clock time.
func Time(uid UID) time.Time {
	return Epoch.Add(time.Duration(Millis(uid)) * time.Millisecond)
}

// Flags returns the raw ⟨𝒇⟩ fraction.
func Flags(uid UID) uint8 { return uint8(getBits(uid[:], 48, FlagsBits)) }

// Version returns the format version encoded in the flag bits.
func Version(uid UID) uint8 { return Flags(uid) & flagVersionMask }

// Privacy reports whether the timestamp was bucketed at allocation.
func Privacy(uid UID) bool { return Flags(uid)&FlagPrivacy != 0 }

// Tenant returns the ⟨𝒏⟩ tenant fraction.
func Tenant(uid UID) uint16 { return uint16(getBits(uid[:], 56, TenantBits)) }

// Seq returns the ⟨𝒔⟩ sequence fraction, the value of the
// per-millisecond counter at allocation.
func Seq(uid UID) uint16 { return uint16(getBits(uid[:], 72, SeqBits)) }

// Shard returns the ⟨𝒉⟩ shard fraction.
func Shard(uid UID) uint16 { return uint16(getBits(uid[:], 84, ShardBits)) }

// Random returns the ⟨𝒓⟩ entropy fraction.
func Random(uid UID) uint64 { return getBits(uid[:], 100, RandomBits) }

//------------------------------------------------------------------------------
//
// Ordering
//
//------------------------------------------------------------------------------

// Eq returns true if identifiers are equal.
func Eq(a, b UID) bool { return a == b }

// Less returns true if a sorts before b.
func Less(a, b UID) bool { return bytes.Compare(a[:], b[:]) < 0 }

// Compare orders identifiers by their binary value, returning
// -1, 0 or +1 in the manner of bytes.Compare.
func Compare(a, b UID) int { return bytes.Compare(a[:], b[:]) }

//------------------------------------------------------------------------------
//
// Codecs
//
//------------------------------------------------------------------------------

// Bytes encodes the identifier to a 20-byte big-endian slice.
func Bytes(uid UID) []byte {
	b := make([]byte, Size)
	copy(b, uid[:])
	return b
}

// FromBytes decodes an identifier from its binary form.
func FromBytes(val []byte) (UID, error) {
	var uid UID
	if len(val) != Size {
		return uid, fmt.Errorf("binary value of %d bytes: %w", len(val), ErrMalformedText)
	}
	copy(uid[:], val)
	return uid, nil
}

// FromString decodes an identifier from its canonical text form,
// dropping the type tag.
func FromString(val string) (UID, error) {
	uid, _, err := Decode(val)
	return uid, err
}

// FromTime returns the lowest identifier allocatable at t. It is the
// lower bound for time-range scans over stored identifiers.
func FromTime(t time.Time) UID {
	ms := t.UnixMilli() - epochMillis
	if ms < 0 {
		ms = 0
	}
	var uid UID
	putBits(uid[:], 0, TimeBits, uint64(ms)&MaxTime)
	return uid
}

// String encodes the identifier as a bare sortable payload, without a
// type tag or checksum.
func (uid UID) String() string { return encode32(uid) }

// MarshalText implements encoding.TextMarshaler, the identifier
// renders as the bare payload.
func (uid UID) MarshalText() ([]byte, error) {
	return []byte(encode32(uid)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Any well-formed
// canonical text is accepted, the type tag is dropped.
func (uid *UID) UnmarshalText(text []byte) error {
	val, _, err := Decode(string(text))
	if err != nil {
		return err
	}
	*uid = val
	return nil
}

// Value implements driver.Valuer, identifiers store as their payload.
func (uid UID) Value() (driver.Value, error) {
	return encode32(uid), nil
}

// Scan implements sql.Scanner for text and binary columns.
func (uid *UID) Scan(src any) error {
	switch val := src.(type) {
	case string:
		return uid.UnmarshalText([]byte(val))
	case []byte:
		if len(val) == Size {
			id, err := FromBytes(val)
			if err != nil {
				return err
			}
			*uid = id
			return nil
		}
		return uid.UnmarshalText(val)
	default:
		return fmt.Errorf("scan of %T: %w", src, ErrMalformedText)
	}
}
