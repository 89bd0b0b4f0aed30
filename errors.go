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

import "errors"

// Error kinds returned by the library. Errors carry context and wrap
// one of these sentinels, match with errors.Is.
var (
	// ErrFieldOverflow: a field value exceeds its bit width at pack time.
	ErrFieldOverflow = errors.New("orderlyid: field overflow")

	// ErrSequenceExhausted: the 12-bit sequence saturated within one
	// millisecond and the clock did not advance within the wait bound.
	ErrSequenceExhausted = errors.New("orderlyid: sequence exhausted")

	// ErrClockRegression: the clock moved backwards and the generator
	// is configured with RegressionFail.
	ErrClockRegression = errors.New("orderlyid: clock regression")

	// ErrChecksumMismatch: the checksum suffix does not match the
	// payload, the text was corrupted in transcription.
	ErrChecksumMismatch = errors.New("orderlyid: checksum mismatch")

	// ErrUnsupportedVersion: the flags field encodes a format version
	// unknown to this decoder.
	ErrUnsupportedVersion = errors.New("orderlyid: unsupported version")

	// ErrMalformedText: structurally invalid input, wrong length,
	// characters outside the alphabet or a broken tag section.
	ErrMalformedText = errors.New("orderlyid: malformed text")
)
