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

package svc

import (
	"bytes"
	"testing"

	"github.com/coffice12/hapble/hapact/gatt"
)

type sinkWrite struct {
	svcIid uint16
	chrIid uint16
	value  []byte
}

type fakeSink struct {
	writes []sinkWrite
}

func (fs *fakeSink) SetChrValue(svcIid uint16, chrIid uint16,
	value []byte) error {

	fs.writes = append(fs.writes, sinkWrite{
		svcIid: svcIid,
		chrIid: chrIid,
		value:  append([]byte(nil), value...),
	})
	return nil
}

func (fs *fakeSink) lastWrite(t *testing.T) sinkWrite {
	t.Helper()

	if len(fs.writes) == 0 {
		t.Fatalf("no response written")
	}
	return fs.writes[len(fs.writes)-1]
}

func TestSvcSigRead(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	// svc-sig-read, tid 1, iid 0x0010.
	ps.Rx([]byte{0x00, 0x06, 0x01, 0x10, 0x00})

	if len(fs.writes) != 1 {
		t.Fatalf("wrong write count: %d", len(fs.writes))
	}

	w := fs.lastWrite(t)
	if w.svcIid != PROTO_SVC_IID || w.chrIid != PROTO_SIG_IID {
		t.Errorf("response written to wrong attribute: svc=0x%04x "+
			"chr=0x%04x", w.svcIid, w.chrIid)
	}

	want := []byte{
		0x02, 0x01, 0x00, // control, tid, success
		0x06, 0x00, // body length
		0x0f, 0x02, 0x04, 0x00, // svc props: supports configuration
		0x10, 0x00, // linked services: empty
	}
	if !bytes.Equal(w.value, want) {
		t.Errorf("wrong response:\nhave=%x\nwant=%x", w.value, want)
	}
}

func TestSvcSigReadWrongIid(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	ps.Rx([]byte{0x00, 0x06, 0x01, 0x20, 0x00})

	if len(fs.writes) != 0 {
		t.Errorf("response written for foreign service iid")
	}
}

func TestChrSigReadSignature(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	// chr-sig-read, tid 9, iid 0x0011 (the signature characteristic).
	ps.Rx([]byte{0x00, 0x01, 0x09, 0x11, 0x00})

	w := fs.lastWrite(t)

	if w.value[0] != 0x02 || w.value[1] != 0x09 || w.value[2] != 0x00 {
		t.Fatalf("wrong response header: %x", w.value[:3])
	}

	body := w.value[5:]
	if len(body) != 53 {
		t.Fatalf("wrong body length: %d", len(body))
	}

	// Characteristic type, little-endian.
	if body[0] != 0x04 || body[1] != 16 {
		t.Fatalf("wrong first TLV header: %x", body[:2])
	}
	if !bytes.Equal(body[2:18], gatt.UuidServiceSignatureChr.WireBytes()) {
		t.Errorf("wrong characteristic uuid: %x", body[2:18])
	}

	// Owning service iid.
	if !bytes.Equal(body[18:22], []byte{0x07, 0x02, 0x10, 0x00}) {
		t.Errorf("wrong service iid item: %x", body[18:22])
	}

	// Owning service type.
	if body[22] != 0x06 || body[23] != 16 {
		t.Fatalf("wrong service type TLV header: %x", body[22:24])
	}
	if !bytes.Equal(body[24:40],
		gatt.UuidProtocolInformationSvc.WireBytes()) {

		t.Errorf("wrong service uuid: %x", body[24:40])
	}

	// HAP properties: secure read.
	if !bytes.Equal(body[40:44], []byte{0x0a, 0x02, 0x10, 0x00}) {
		t.Errorf("wrong props item: %x", body[40:44])
	}

	// GATT format: data format, unitless, namespace 1.
	want := []byte{0x0c, 0x07, 0x1b, 0x00, 0x00, 0x27, 0x01, 0x00, 0x00}
	if !bytes.Equal(body[44:53], want) {
		t.Errorf("wrong format item:\nhave=%x\nwant=%x", body[44:53], want)
	}
}

func TestChrSigReadVersion(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	ps.Rx([]byte{0x00, 0x01, 0x03, 0x12, 0x00})

	w := fs.lastWrite(t)
	body := w.value[5:]

	if !bytes.Equal(body[2:18], gatt.UuidVersionChr.WireBytes()) {
		t.Errorf("wrong characteristic uuid: %x", body[2:18])
	}

	// GATT format: string.
	if body[46] != 0x19 {
		t.Errorf("wrong format byte: 0x%02x", body[46])
	}
}

func TestChrSigReadUnknownIid(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	ps.Rx([]byte{0x00, 0x01, 0x01, 0x99, 0x00})

	if len(fs.writes) != 0 {
		t.Errorf("response written for unknown characteristic iid")
	}
}

func TestRxGarbage(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	ps.Rx(nil)
	ps.Rx([]byte{0x0c})                         // reserved control bits
	ps.Rx([]byte{0x00, 0xff, 0x01, 0x10, 0x00}) // unknown opcode
	ps.Rx([]byte{0x02, 0x01, 0x00})             // response pdu

	if len(fs.writes) != 0 {
		t.Errorf("response written for garbage input")
	}
}

func TestRxUnhandledOpcode(t *testing.T) {
	fs := &fakeSink{}
	ps := NewProtocolSvc(fs)

	// chr-read is valid but not handled by this service.
	ps.Rx([]byte{0x00, 0x03, 0x01, 0x11, 0x00})

	if len(fs.writes) != 0 {
		t.Errorf("response written for unhandled opcode")
	}
}
