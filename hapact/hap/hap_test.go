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

	"github.com/coffice12/hapble/hapact/hapxutil"
)

func TestParseSvcSigRead(t *testing.T) {
	// Service signature read for iid 0x0010, tid 1, with trailing noise
	// after the header.
	data := []byte{0x00, 0x06, 0x01, 0x10, 0x00, 0xde, 0xad}

	req, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %s", err.Error())
	}

	if req.Op != OP_SVC_SIG_READ {
		t.Errorf("wrong opcode: have=%d want=%d", req.Op, OP_SVC_SIG_READ)
	}
	if req.Tid != 1 {
		t.Errorf("wrong tid: have=%d want=1", req.Tid)
	}
	if req.TargetIid != 0x0010 {
		t.Errorf("wrong iid: have=0x%04x want=0x0010", req.TargetIid)
	}
	if req.IidWidth != IID_WIDTH_16 {
		t.Errorf("wrong iid width: %d", req.IidWidth)
	}
}

func TestParseChrSigRead(t *testing.T) {
	data := []byte{0x00, 0x01, 0x2a, 0x11, 0x00}

	req, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %s", err.Error())
	}

	if req.Op != OP_CHR_SIG_READ {
		t.Errorf("wrong opcode: %d", req.Op)
	}
	if req.Tid != 0x2a {
		t.Errorf("wrong tid: %d", req.Tid)
	}
	if req.TargetIid != 0x0011 {
		t.Errorf("wrong iid: 0x%04x", req.TargetIid)
	}
}

func TestParseIidWidth64(t *testing.T) {
	data := []byte{0x10, 0x03, 0x07, 0x22, 0x00}

	req, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %s", err.Error())
	}

	if req.IidWidth != IID_WIDTH_64 {
		t.Errorf("wrong iid width: %d", req.IidWidth)
	}
	if req.TargetIid != 0x0022 {
		t.Errorf("wrong iid: 0x%04x", req.TargetIid)
	}
}

func TestParseShort(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x00, 0x06},
		{0x00, 0x06, 0x01},
		{0x00, 0x06, 0x01, 0x10},
	}

	for _, data := range cases {
		_, err := Parse(data)
		if !hapxutil.IsBadLength(err) {
			t.Errorf("expected bad length error for %d-byte PDU; got %v",
				len(data), err)
		}
	}
}

func TestParseReservedBits(t *testing.T) {
	for _, ctl := range []byte{0x04, 0x08, 0x0c} {
		data := []byte{ctl, 0x06, 0x01, 0x10, 0x00}

		_, err := Parse(data)
		if !hapxutil.IsUnsupportedPduType(err) {
			t.Fatalf("expected unsupported pdu type error for control "+
				"0x%02x; got %v", ctl, err)
		}

		upt := err.(*hapxutil.UnsupportedPduTypeError)
		if upt.Code != (ctl&0x0e)>>1 {
			t.Errorf("wrong pdu type code: have=%d want=%d",
				upt.Code, (ctl&0x0e)>>1)
		}
	}
}

func TestParseUnknownOpCode(t *testing.T) {
	for _, op := range []byte{0x00, 0x09, 0xff} {
		data := []byte{0x00, op, 0x01, 0x10, 0x00}

		_, err := Parse(data)
		if !hapxutil.IsUnknownOpCode(err) {
			t.Errorf("expected unknown opcode error for 0x%02x; got %v",
				op, err)
		}
	}
}

func TestParseContinuation(t *testing.T) {
	data := []byte{0x80, 0x01, 0x04, 0x05}

	_, err := Parse(data)
	if !hapxutil.IsFragmentedPdu(err) {
		t.Fatalf("expected fragmented pdu error; got %v", err)
	}
}

func TestParseResponse(t *testing.T) {
	data := []byte{0x02, 0x01, 0x00}

	_, err := Parse(data)
	if !hapxutil.IsNotSupported(err) {
		t.Fatalf("expected not supported error; got %v", err)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	req := &Request{
		Op:        OP_CHR_READ,
		Tid:       0x77,
		TargetIid: 0x1234,
	}

	out, err := Parse(req.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %s", err.Error())
	}

	if *out != *req {
		t.Errorf("round trip mismatch: have=%+v want=%+v", out, req)
	}
}

func TestOpCodeFromString(t *testing.T) {
	op, err := OpCodeFromString("svc-sig-read")
	if err != nil {
		t.Fatalf("OpCodeFromString failed: %s", err.Error())
	}
	if op != OP_SVC_SIG_READ {
		t.Errorf("wrong opcode: %d", op)
	}

	if _, err := OpCodeFromString("bogus"); err == nil {
		t.Errorf("expected error for unknown opcode name")
	}
}

func TestResponseEmptyBody(t *testing.T) {
	rsp := NewResponse(0x42, STATUS_SUCCESS, nil)

	if rsp.Size() != RSP_HDR_SIZE {
		t.Fatalf("wrong size: have=%d want=%d", rsp.Size(), RSP_HDR_SIZE)
	}

	var buf [16]byte
	n, err := rsp.WriteInto(buf[:])
	if err != nil {
		t.Fatalf("WriteInto failed: %s", err.Error())
	}

	want := []byte{0x02, 0x42, 0x00}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("wrong encoding: have=%x want=%x", buf[:n], want)
	}
}

func TestResponseWithBody(t *testing.T) {
	body := []byte{0x0f, 0x02, 0x04, 0x00, 0x10, 0x00}
	rsp := NewResponse(0x01, STATUS_SUCCESS, body)

	var buf [16]byte
	n, err := rsp.WriteInto(buf[:])
	if err != nil {
		t.Fatalf("WriteInto failed: %s", err.Error())
	}

	want := []byte{
		0x02, 0x01, 0x00, // control, tid, status
		0x06, 0x00, // body length
		0x0f, 0x02, 0x04, 0x00, 0x10, 0x00,
	}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("wrong encoding:\nhave=%x\nwant=%x", buf[:n], want)
	}
}

func TestResponseErrorStatus(t *testing.T) {
	rsp := NewResponse(0x07, STATUS_UNSUPPORTED_PDU, nil)

	var buf [3]byte
	n, err := rsp.WriteInto(buf[:])
	if err != nil {
		t.Fatalf("WriteInto failed: %s", err.Error())
	}
	if n != 3 {
		t.Fatalf("wrong length: %d", n)
	}
	if buf[2] != uint8(STATUS_UNSUPPORTED_PDU) {
		t.Errorf("wrong status byte: 0x%02x", buf[2])
	}
}

func TestResponseShortBuffer(t *testing.T) {
	rsp := NewResponse(0x01, STATUS_SUCCESS, []byte{0xaa, 0xbb})

	var buf [6]byte
	for i := range buf {
		buf[i] = 0xa5
	}

	// Needs 3 + 2 + 2 = 7 bytes.
	n, err := rsp.WriteInto(buf[:])
	if !hapxutil.IsInsufficientBuffer(err) {
		t.Fatalf("expected insufficient buffer error; got %v", err)
	}
	if n != 0 {
		t.Errorf("partial write reported: n=%d", n)
	}

	// Nothing may be written on failure.
	for i, b := range buf {
		if b != 0xa5 {
			t.Errorf("buffer modified at offset %d: 0x%02x", i, b)
		}
	}
}

func TestDecodeControlField(t *testing.T) {
	cf, err := DecodeControlField(0x92)
	if err != nil {
		t.Fatalf("DecodeControlField failed: %s", err.Error())
	}

	if cf.Frag != FRAG_CONTINUATION {
		t.Errorf("wrong fragmentation: %d", cf.Frag)
	}
	if cf.IidWidth != IID_WIDTH_64 {
		t.Errorf("wrong iid width: %d", cf.IidWidth)
	}
	if cf.PduType != PDU_TYPE_RESPONSE {
		t.Errorf("wrong pdu type: %d", cf.PduType)
	}
}
