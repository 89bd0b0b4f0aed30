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
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// RegressionPolicy selects the recovery behavior when the clock moves
// backwards. The policy is fixed per generator, mixing both within one
// process produces inconsistent ordering semantics.
type RegressionPolicy int

const (
	// RegressionFail fails the allocation with ErrClockRegression.
	RegressionFail RegressionPolicy = iota

	// RegressionClamp clamps the timestamp to the last observed value
	// and accepts reduced ordering precision for the call.
	RegressionClamp
)

// DefaultWaitBound caps the wait for the next millisecond when the
// sequence space of the current one is saturated.
const DefaultWaitBound = 10 * time.Millisecond

// waitStep is the sleep quantum of the wait loop.
const waitStep = 100 * time.Microsecond

// Generator allocates identifiers from a clock, a private sequence
// counter and the configured tenant, shard and flags. It is safe for
// concurrent use, the read-modify-write of the counter is serialized
// under the mutex.
type Generator struct {
	mu      sync.Mutex
	clock   Clock
	entropy io.Reader
	seq     sequencer

	tenant uint16
	shard  uint16
	flags  uint8
	tag    string
	sum    bool
	policy RegressionPolicy
	bound  time.Duration
	bucket time.Duration
}

// Option configures a generator.
type Option func(*Generator)

// WithTenant sets the ⟨𝒏⟩ tenant fraction of allocated identifiers.
func WithTenant(tenant uint16) Option {
	return func(g *Generator) { g.tenant = tenant }
}

// WithShard sets the ⟨𝒉⟩ shard fraction of allocated identifiers.
func WithShard(shard uint16) Option {
	return func(g *Generator) { g.shard = shard }
}

// WithTag sets the type tag prepended by NewString.
func WithTag(tag string) Option {
	return func(g *Generator) { g.tag = tag }
}

// WithChecksum appends the transcription checksum in NewString.
func WithChecksum() Option {
	return func(g *Generator) { g.sum = true }
}

// WithTimeBucket truncates the ⟨𝒕⟩ fraction to multiples of d and sets
// the privacy flag, the exact allocation time is not leaked by the
// identifier. Ordering within one bucket degrades to sequence and
// randomness.
func WithTimeBucket(d time.Duration) Option {
	return func(g *Generator) { g.bucket = d }
}

// WithClock replaces the timestamp source.
func WithClock(clock Clock) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithEntropy replaces the source of the ⟨𝒓⟩ fraction. Fixed sources
// make allocation reproducible in tests.
func WithEntropy(entropy io.Reader) Option {
	return func(g *Generator) { g.entropy = entropy }
}

// WithRegression selects the clock regression recovery policy.
// The default is RegressionFail.
func WithRegression(policy RegressionPolicy) Option {
	return func(g *Generator) { g.policy = policy }
}

// WithWaitBound caps the wait for the clock to advance on sequence
// exhaustion, past the bound allocation fails. A zero bound fails
// immediately.
func WithWaitBound(bound time.Duration) Option {
	return func(g *Generator) { g.bound = bound }
}

// NewGenerator creates a generator. Configuration is validated up
// front, allocation never revisits it.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		entropy: rand.Reader,
		bound:   DefaultWaitBound,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.clock == nil {
		g.clock = NewClock()
	}
	if g.tag != "" && !tagRe.MatchString(g.tag) {
		return nil, fmt.Errorf("type tag %q: %w", g.tag, ErrMalformedText)
	}
	if g.bound < 0 {
		return nil, fmt.Errorf("orderlyid: negative wait bound %v", g.bound)
	}
	if g.bucket != 0 && g.bucket < time.Millisecond {
		return nil, fmt.Errorf("orderlyid: time bucket %v below 1ms", g.bucket)
	}
	if g.policy != RegressionFail && g.policy != RegressionClamp {
		return nil, fmt.Errorf("orderlyid: unknown clock regression policy %d", g.policy)
	}

	g.flags = CurrentVersion
	if g.bucket > 0 {
		g.flags |= FlagPrivacy
	}
	return g, nil
}

// New allocates the next identifier.
//
// Identifiers allocated by one generator are strictly increasing: a
// later call observes either a greater timestamp or the same
// millisecond with an incremented sequence. No ordering guarantee is
// made across processes.
func (g *Generator) New() (UID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, seq, err := g.next()
	if err != nil {
		return UID{}, err
	}

	rnd, err := g.random()
	if err != nil {
		return UID{}, fmt.Errorf("entropy source: %w", err)
	}

	if g.bucket > 0 {
		t -= t % uint64(g.bucket/time.Millisecond)
	}

	return Pack(Fields{
		Time:   t,
		Flags:  g.flags,
		Tenant: g.tenant,
		Seq:    seq,
		Shard:  g.shard,
		Random: rnd,
	})
}

// NewString allocates the next identifier and renders it with the
// configured type tag and checksum mode.
func (g *Generator) NewString() (string, error) {
	uid, err := g.New()
	if err != nil {
		return "", err
	}
	return Encode(uid, g.tag, g.sum)
}

// Batch allocates n identifiers, the result is strictly increasing.
func (g *Generator) Batch(n int) ([]UID, error) {
	uids := make([]UID, 0, n)
	for i := 0; i < n; i++ {
		uid, err := g.New()
		if err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

// next obtains the (timestamp, sequence) pair, recovering from
// sequence exhaustion and clock regression per configuration. The
// wait loop is bounded, allocation fails fast rather than stalling
// the caller.
func (g *Generator) next() (uint64, uint16, error) {
	var waited time.Duration
	for {
		t, _ := g.clock.Now()
		seq, err := g.seq.next(t)
		if err == nil {
			return t, seq, nil
		}

		if errors.Is(err, ErrClockRegression) {
			if g.policy == RegressionFail {
				return 0, 0, fmt.Errorf("clock behind by %dms: %w", g.seq.last-t, ErrClockRegression)
			}
			// clamp to the high-water millisecond
			t = g.seq.last
			if seq, err = g.seq.next(t); err == nil {
				return t, seq, nil
			}
		}

		// sequence space of the millisecond is saturated
		if waited >= g.bound {
			return 0, 0, fmt.Errorf("%d allocations within one millisecond, waited %v: %w",
				MaxSeq+1, waited, ErrSequenceExhausted)
		}
		time.Sleep(waitStep)
		waited += waitStep
	}
}

// random draws the ⟨𝒓⟩ fraction, fresh on every allocation.
func (g *Generator) random() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(g.entropy, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]) & MaxRandom, nil
}

// std is the process-wide default generator: version 1 flags, no
// tenant, no shard, fail on clock regression.
var std = func() *Generator {
	g, err := NewGenerator()
	if err != nil {
		panic(err)
	}
	return g
}()

// New allocates an identifier from the process-wide default generator.
func New() (UID, error) { return std.New() }

// NewString allocates an identifier from the process-wide default
// generator and renders it as a bare payload.
func NewString() (string, error) { return std.NewString() }
