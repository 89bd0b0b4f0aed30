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

import "fmt"

// The Crockford-style alphabet excludes i, l, o, u and is strictly
// increasing in ASCII. Lexicographic order of encoded strings therefore
// equals numeric order of the 160-bit values, see TestAlphabetOrdered.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// encode32 renders the 160-bit value as 32 characters, 5 bits per cell.
func encode32(uid UID) string {
	b := make([]byte, EncodedSize)
	for i := range b {
		b[i] = alphabet[getBits(uid[:], uint(i)*5, 5)]
	}
	return string(b)
}

// decode32 folds a 32-character payload back to the 160-bit value.
func decode32(payload string) (UID, error) {
	var uid UID
	if len(payload) != EncodedSize {
		return uid, fmt.Errorf("payload of %d characters: %w", len(payload), ErrMalformedText)
	}
	for i := 0; i < len(payload); i++ {
		v := rank(payload[i])
		if v < 0 {
			return UID{}, fmt.Errorf("character %q at %d: %w", payload[i], i, ErrMalformedText)
		}
		putBits(uid[:], uint(i)*5, 5, uint64(v))
	}
	return uid, nil
}

// rank maps an alphabet character to its 5-bit value, -1 otherwise.
func rank(c byte) int8 {
	switch {
	case c >= '0' && c <= '9':
		return int8(c - '0')
	case c >= 'a' && c <= 'h':
		return int8(c-'a') + 10
	case c == 'j' || c == 'k':
		return int8(c-'j') + 18
	case c == 'm' || c == 'n':
		return int8(c-'m') + 20
	case c >= 'p' && c <= 't':
		return int8(c-'p') + 22
	case c >= 'v' && c <= 'z':
		return int8(c-'v') + 27
	default:
		return -1
	}
}
