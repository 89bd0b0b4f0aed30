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

// Bit comprehension over a byte array. Bit 0 is the most significant
// bit of the first byte, fields may span byte boundaries.

// putBits writes the width low bits of val into dst starting at bit
// offset off. Bits of dst under the destination window must be zero.
func putBits(dst []byte, off, width uint, val uint64) {
	for width > 0 {
		room := 8 - off&7
		n := min(room, width)
		cell := byte(val>>(width-n)) & byte(1<<n-1)
		dst[off>>3] |= cell << (room - n)
		off += n
		width -= n
	}
}

// getBits reads width bits from src starting at bit offset off.
func getBits(src []byte, off, width uint) (val uint64) {
	for width > 0 {
		room := 8 - off&7
		n := min(room, width)
		cell := (src[off>>3] >> (room - n)) & byte(1<<n-1)
		val = val<<n | uint64(cell)
		off += n
		width -= n
	}
	return
}
