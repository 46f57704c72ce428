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
	"bytes"
	"testing"
)

func TestTlvEncode(t *testing.T) {
	tlv := NewTlvUint16(TLV_PARAM_SVC_PROPS, 0x0004)

	var buf [8]byte
	n := tlv.EncodeTo(buf[:])

	want := []byte{0x0f, 0x02, 0x04, 0x00}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("wrong encoding: have=%x want=%x", buf[:n], want)
	}
}

func TestTlvEmptyValue(t *testing.T) {
	tlv := NewTlv(TLV_PARAM_LINKED_SVCS, nil)

	if tlv.Size() != 2 {
		t.Fatalf("wrong size: %d", tlv.Size())
	}

	var buf [2]byte
	n := tlv.EncodeTo(buf[:])

	want := []byte{0x10, 0x00}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("wrong encoding: have=%x want=%x", buf[:n], want)
	}
}

func TestTlvUint64(t *testing.T) {
	tlv := NewTlvUint64(TLV_PARAM_CHR_IID, 0x1122334455667788)

	var buf [10]byte
	n := tlv.EncodeTo(buf[:])

	want := []byte{0x05, 0x08,
		0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("wrong encoding: have=%x want=%x", buf[:n], want)
	}
}

func TestTlvOversizedValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for 256-byte TLV value")
		}
	}()

	NewTlv(TLV_PARAM_DESCRIPTION, make([]byte, 256))
}

func TestTlvShortBuffer(t *testing.T) {
	tlv := NewTlvUint16(TLV_PARAM_CHR_PROPS, 0x0001)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for undersized buffer")
		}
	}()

	var buf [3]byte
	tlv.EncodeTo(buf[:])
}
