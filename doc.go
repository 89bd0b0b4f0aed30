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

/*
Package orderlyid implements structured, sortable, decentralized
identifiers for sharded and multi-tenant systems. It is a drop-in
replacement for auto-increment keys, UUIDv4, ULID and Snowflake in
applications that need identifiers carrying their own routing and
tenancy context.

# Key features

↣ ID allocation does not require centralized authority or coordination
with other nodes, uniqueness across processes is probabilistic via
60 bits of cryptographic randomness and a node-scoped sequence.

↣ IDs are roughly sortable by allocation order, the binary value and
its text encoding sort identically.

↣ IDs embed tenant and shard context so that routing decisions need no
lookup, the identifier itself is the routing hint.

↣ IDs render to a human-readable text form with an optional type tag
(order_..., user_...) and an optional transcription checksum.

# Identity schema

A fixed size of 160 bits is used, fields packed most significant first.

	     48 bit      8 bit    16 bit   12 bit   16 bit        60 bit
	|-------------|--------|--------|--------|--------|------------------|
	      ⟨𝒕⟩         ⟨𝒇⟩      ⟨𝒏⟩      ⟨𝒔⟩      ⟨𝒉⟩          ⟨𝒓⟩

↣ ⟨𝒕⟩ is a 48-bit UTC timestamp with millisecond precision, counted
from 2020-01-01T00:00:00Z. The custom epoch defers the field overflow
to roughly the year 10900.

↣ ⟨𝒇⟩ is an 8-bit flags set: 4 version bits, one privacy
(time-bucketing) bit and 3 reserved bits.

↣ ⟨𝒏⟩ is a 16-bit tenant identifier, zero is reserved for "no tenant".

↣ ⟨𝒔⟩ is a 12-bit per-millisecond sequence. It orders identifiers
allocated within a single millisecond on a single process and caps the
burst at 4096 allocations per millisecond.

↣ ⟨𝒉⟩ is a 16-bit shard hint, opaque to the codec.

↣ ⟨𝒓⟩ is 60 bits of cryptographic randomness, refreshed on every
allocation.

# Text encoding

The canonical text form is

	[<tag>_]<payload>[-<checksum>]

where payload is a 32-character base32 rendering of the 160-bit value.
The alphabet 0123456789abcdefghjkmnpqrstvwxyz is strictly increasing in
ASCII, therefore lexicographic order of payloads equals numeric order
of the binary values. The optional 4-character checksum detects every
single-character transcription error in the payload.

	order_01h8n6qj3k9m2p4r6s8t0v2w4x6y8z0a
	payment_01h8n6qj3k9m2p4r6s8t0v2w4x6y8z0c-a1b2

# Usage

	gen, err := orderlyid.NewGenerator(
		orderlyid.WithTenant(42),
		orderlyid.WithShard(7),
		orderlyid.WithTag("order"),
		orderlyid.WithChecksum(),
	)
	...
	uid, err := gen.New()
	txt, err := gen.NewString()

Identifiers allocated by a single generator are strictly increasing.
No ordering guarantee is made across processes, the schema is suitable
for partial event ordering only.
*/
package orderlyid
