/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package hap

import (
	"encoding/binary"
	"fmt"
)

// A Tlv is a single type-length-value item: one type byte, one length byte
// (0-255), then the value bytes.  Signature bodies are several of these
// written back to back into one buffer.
type Tlv struct {
	Type  uint8
	Value []byte
}

// The single-byte length field caps a TLV value at 255 bytes.  All in-scope
// construction sites use small fixed-size values, so a longer value is a
// caller bug, not runtime input.
func NewTlv(typ uint8, value []byte) Tlv {
	if len(value) > 255 {
		panic(fmt.Sprintf("TLV value too long: %d bytes", len(value)))
	}

	return Tlv{
		Type:  typ,
		Value: value,
	}
}

func NewTlvUint8(typ uint8, value uint8) Tlv {
	return NewTlv(typ, []byte{value})
}

func NewTlvUint16(typ uint8, value uint16) Tlv {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, value)
	return NewTlv(typ, b)
}

func NewTlvUint64(typ uint8, value uint64) Tlv {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, value)
	return NewTlv(typ, b)
}

func (t Tlv) Size() int {
	return 2 + len(t.Value)
}

// EncodeTo writes the item into buf and returns the number of bytes
// written.  The caller supplies a buffer region sized for the item; an
// undersized region is a caller bug.
func (t Tlv) EncodeTo(buf []byte) int {
	if len(buf) < t.Size() {
		panic(fmt.Sprintf("TLV buffer too small: need=%d have=%d",
			t.Size(), len(buf)))
	}

	buf[0] = t.Type
	buf[1] = uint8(len(t.Value))
	copy(buf[2:], t.Value)

	return t.Size()
}
