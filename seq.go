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

// sequencer is the per-process, per-millisecond counter. It holds the
// high-water timestamp and the counter value for that millisecond.
// The state lives for the process lifetime and is never persisted,
// a restart resets the sequence.
//
// The contract assumes single-threaded access, each generator owns a
// private instance and serializes calls under its mutex.
type sequencer struct {
	primed bool
	last   uint64
	seq    uint16
}

// next advances the counter for timestamp t.
//
// t ahead of the high-water mark starts a fresh millisecond at
// sequence zero. The same millisecond increments, saturation of the
// 12-bit space signals ErrSequenceExhausted and the caller must wait
// for the clock to advance, the counter never wraps silently. A
// regressed t signals ErrClockRegression, sequence space of a future
// millisecond is never reused.
func (s *sequencer) next(t uint64) (uint16, error) {
	switch {
	case !s.primed || t > s.last:
		s.primed, s.last, s.seq = true, t, 0
		return 0, nil
	case t == s.last:
		if s.seq >= MaxSeq {
			return 0, ErrSequenceExhausted
		}
		s.seq++
		return s.seq, nil
	default:
		return 0, ErrClockRegression
	}
}
