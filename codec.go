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
	"fmt"
	"regexp"
	"strings"
)

// tagRe is the type tag grammar. Underscore is excluded so the first
// underscore in the text always separates the tag from the payload.
var tagRe = regexp.MustCompile(`^[a-z][a-z0-9]{0,31}$`)

// Encode renders the identifier in its canonical text form
//
//	[<tag>_]<payload>[-<checksum>]
//
// The tag is caller metadata, it is not stored in the 160 bits. The
// checksum covers the payload only.
func Encode(uid UID, tag string, withChecksum bool) (string, error) {
	if tag != "" && !tagRe.MatchString(tag) {
		return "", fmt.Errorf("type tag %q: %w", tag, ErrMalformedText)
	}

	payload := encode32(uid)

	var b strings.Builder
	b.Grow(len(tag) + 1 + EncodedSize + 1 + checksumLen)
	if tag != "" {
		b.WriteString(tag)
		b.WriteByte('_')
	}
	b.WriteString(payload)
	if withChecksum {
		b.WriteByte('-')
		b.WriteString(checksum(payload))
	}
	return b.String(), nil
}

// Decode parses canonical text back to the identifier and its type
// tag. The checksum, when present, is verified before any field
// validation so that corrupted text never decodes to plausible-looking
// fields. Decoding is stateless and safe for concurrent use.
func Decode(text string) (UID, string, error) {
	var zero UID

	body, sum, sumPresent := strings.Cut(text, "-")

	tag := ""
	if i := strings.IndexByte(body, '_'); i >= 0 {
		tag, body = body[:i], body[i+1:]
		if !tagRe.MatchString(tag) {
			return zero, "", fmt.Errorf("type tag %q: %w", tag, ErrMalformedText)
		}
	}

	if len(body) != EncodedSize {
		return zero, "", fmt.Errorf("payload of %d characters: %w", len(body), ErrMalformedText)
	}

	if sumPresent {
		if len(sum) != checksumLen {
			return zero, "", fmt.Errorf("checksum of %d characters: %w", len(sum), ErrMalformedText)
		}
		if checksum(body) != sum {
			return zero, "", fmt.Errorf("checksum %q over %q: %w", sum, body, ErrChecksumMismatch)
		}
	}

	uid, err := decode32(body)
	if err != nil {
		return zero, "", err
	}

	if v := Version(uid); v != CurrentVersion {
		return zero, "", fmt.Errorf("format version %d: %w", v, ErrUnsupportedVersion)
	}
	return uid, tag, nil
}
