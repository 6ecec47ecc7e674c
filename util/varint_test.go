// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/petd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff, 0xff},
}

func TestVarint64(t *testing.T) {

	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}

		suffix := []byte{0xff, 0x97, 0x23}
		b := append(append([]byte{}, item.encoded...), suffix...)

		result, count := util.FromVarint64(b)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, b, result, item.value)
		}
		if !bytes.Equal(suffix, b[count:]) {
			t.Errorf("%d: suffix: %x  expected: %x", i, b[count:], suffix)
		}
	}

	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, result, count)
		}
	}
}

func TestLengthPrefixedBytes(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("kitty"))
	buffer = util.AppendBytes(buffer, []byte{})
	buffer = append(buffer, 0x42)

	first, rest, ok := util.ReadBytes(buffer)
	if !ok || "kitty" != string(first) {
		t.Fatalf("first: %q  ok: %v", first, ok)
	}

	second, rest, ok := util.ReadBytes(rest)
	if !ok || 0 != len(second) {
		t.Fatalf("second: %x  ok: %v", second, ok)
	}

	if !bytes.Equal([]byte{0x42}, rest) {
		t.Errorf("rest: %x", rest)
	}

	// length runs past the end of the buffer
	if _, _, ok := util.ReadBytes([]byte{0x05, 'a', 'b'}); ok {
		t.Error("truncated data was accepted")
	}
}
