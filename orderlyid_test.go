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

package orderlyid_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/orderlykit/orderlyid"
)

func TestLenses(t *testing.T) {
	uid, err := orderlyid.Pack(golden2Fields)

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(orderlyid.Millis(uid), golden2Fields.Time),
		it.Equal(orderlyid.Flags(uid), uint8(0x11)),
		it.Equal(orderlyid.Version(uid), uint8(1)),
		it.True(orderlyid.Privacy(uid)),
		it.Equal(orderlyid.Tenant(uid), uint16(65535)),
		it.Equal(orderlyid.Seq(uid), uint16(4095)),
		it.Equal(orderlyid.Shard(uid), uint16(513)),
		it.Equal(orderlyid.Random(uid), uint64(0x0fffffffffffffff)),
		it.Equal(
			orderlyid.Time(uid),
			orderlyid.Epoch.Add(time.Duration(golden2Fields.Time)*time.Millisecond),
		),
	)
}

func TestOrdering(t *testing.T) {
	a, _ := orderlyid.Pack(goldenFields)
	b, _ := orderlyid.Pack(golden2Fields)

	it.Then(t).Should(
		it.True(orderlyid.Eq(a, a)),
		it.True(orderlyid.Less(a, b)),
		it.Equal(orderlyid.Compare(a, b), -1),
		it.Equal(orderlyid.Compare(b, a), 1),
		it.Equal(orderlyid.Compare(a, a), 0),
	)
	it.Then(t).ShouldNot(
		it.True(orderlyid.Eq(a, b)),
		it.True(orderlyid.Less(b, a)),
	)
}

func TestBytesCodec(t *testing.T) {
	uid, _ := orderlyid.Pack(golden2Fields)

	val, err := orderlyid.FromBytes(orderlyid.Bytes(uid))

	it.Then(t).Should(
		it.True(err == nil),
		it.True(orderlyid.Eq(val, uid)),
	)

	_, err = orderlyid.FromBytes([]byte{1, 2, 3})
	it.Then(t).Should(
		it.True(errors.Is(err, orderlyid.ErrMalformedText)),
	)
}

func TestFromString(t *testing.T) {
	uid, _ := orderlyid.Pack(goldenFields)
	text, _ := orderlyid.Encode(uid, "order", true)

	val, err := orderlyid.FromString(text)

	it.Then(t).Should(
		it.True(err == nil),
		it.True(orderlyid.Eq(val, uid)),
	)
}

func TestFromTime(t *testing.T) {
	at := orderlyid.Epoch.Add(5 * time.Millisecond)
	low := orderlyid.FromTime(at)

	it.Then(t).Should(
		it.Equal(orderlyid.Millis(low), uint64(5)),
		it.Equal(orderlyid.Unpack(low), orderlyid.Fields{Time: 5}),
	)

	// a probe is the lower bound of everything allocated at that time
	allocated, _ := orderlyid.Pack(orderlyid.Fields{Time: 5, Flags: 0x01, Seq: 1, Random: 42})
	it.Then(t).Should(
		it.True(orderlyid.Less(low, allocated)),
	)

	// clamped to the epoch for prehistoric times
	it.Then(t).Should(
		it.Equal(orderlyid.Millis(orderlyid.FromTime(time.Unix(0, 0))), uint64(0)),
	)
}

func TestJSONCodec(t *testing.T) {
	type myStruct struct {
		ID orderlyid.UID `json:"id"`
	}

	uid, _ := orderlyid.Pack(golden2Fields)
	b, err := json.Marshal(myStruct{ID: uid})

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(string(b), `{"id":"`+golden2Payload+`"}`),
	)

	var val myStruct
	err = json.Unmarshal(b, &val)

	it.Then(t).Should(
		it.True(err == nil),
		it.True(orderlyid.Eq(val.ID, uid)),
	)
}

func TestUnmarshalTextMalformed(t *testing.T) {
	var uid orderlyid.UID
	err := uid.UnmarshalText([]byte("not-an-identifier"))

	it.Then(t).Should(
		it.True(errors.Is(err, orderlyid.ErrMalformedText)),
	)
}

func TestSQLCodec(t *testing.T) {
	uid, _ := orderlyid.Pack(golden2Fields)

	val, err := uid.Value()
	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(val.(string), golden2Payload),
	)

	var fromText orderlyid.UID
	it.Then(t).Should(
		it.True(fromText.Scan(golden2Payload) == nil),
		it.True(orderlyid.Eq(fromText, uid)),
	)

	var fromBinary orderlyid.UID
	it.Then(t).Should(
		it.True(fromBinary.Scan(orderlyid.Bytes(uid)) == nil),
		it.True(orderlyid.Eq(fromBinary, uid)),
	)

	var bad orderlyid.UID
	it.Then(t).Should(
		it.True(errors.Is(bad.Scan(42), orderlyid.ErrMalformedText)),
	)
}
