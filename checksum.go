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

// Largest 16-bit prime (the Adler-32 modulus). A single-character
// substitution perturbs the payload, read as a base-256 number, by
// d·256^k with 0 < d < 256. The modulus is prime and larger than 256,
// so the perturbation never vanishes modulo it and every
// single-character substitution is caught.
const checksumMod = 65521

// checksumLen is the width of the checksum suffix in characters.
const checksumLen = 4

// checksum reduces the payload string modulo checksumMod and renders
// the remainder as 4 lowercase hex characters.
func checksum(payload string) string {
	rem := uint32(0)
	for i := 0; i < len(payload); i++ {
		rem = (rem<<8 | uint32(payload[i])) % checksumMod
	}
	return fmt.Sprintf("%04x", rem)
}
