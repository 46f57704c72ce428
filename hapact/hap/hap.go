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

	"github.com/coffice12/hapble/hapact/hapxutil"
)

// Control field layout (HAP spec section 7.3.3.1):
//   bit 7  - fragmentation (0=first/only fragment, 1=continuation)
//   bit 4  - instance id width (0=16-bit, 1=64-bit)
//   bits 2-3 - reserved, must be zero
//   bit 1  - PDU type (0=request, 1=response)
//   bit 0  - reserved
const (
	ctlFragBit     = 1 << 7
	ctlIidWidthBit = 1 << 4
	ctlTypeBit     = 1 << 1
	ctlRsvdMask    = 0x0c
)

// Request header after the control field: opcode, tid, 16-bit iid.
const REQ_HDR_SIZE = 4

// Minimum size of a complete request PDU, control field included.
const MIN_REQ_PDU_SIZE = 1 + REQ_HDR_SIZE

// Response header: control field, tid, status.
const RSP_HDR_SIZE = 3

// The response body length field is 16 bits.
const MAX_RSP_BODY_LEN = 65535

// Maximum size of a reassembled PDU accepted from a peer.
const MAX_PDU_SIZE = 512

// Control field value marking an unfragmented response.
const rspControlField = ctlTypeBit

type Fragmentation uint8

const (
	FRAG_FIRST Fragmentation = iota
	FRAG_CONTINUATION
)

type IidWidth uint8

const (
	IID_WIDTH_16 IidWidth = iota
	IID_WIDTH_64
)

type PduType uint8

const (
	PDU_TYPE_REQUEST PduType = iota
	PDU_TYPE_RESPONSE
)

// ControlField is the decoded form of a PDU's leading byte.
type ControlField struct {
	Frag     Fragmentation
	IidWidth IidWidth
	PduType  PduType
}

// DecodeControlField validates the reserved bits and unpacks the rest.
func DecodeControlField(b byte) (ControlField, error) {
	if b&ctlRsvdMask != 0 {
		return ControlField{},
			hapxutil.NewUnsupportedPduTypeError((b & 0x0e) >> 1)
	}

	cf := ControlField{}

	if b&ctlFragBit != 0 {
		cf.Frag = FRAG_CONTINUATION
	}
	if b&ctlIidWidthBit != 0 {
		cf.IidWidth = IID_WIDTH_64
	}
	if b&ctlTypeBit != 0 {
		cf.PduType = PDU_TYPE_RESPONSE
	}

	return cf, nil
}

// Request is a parsed HAP request PDU.  Request bodies are not part of this
// core; trailing bytes after the header are ignored.
type Request struct {
	IidWidth  IidWidth
	Op        OpCode
	Tid       uint8
	TargetIid uint16
}

func (r *Request) String() string {
	return fmt.Sprintf("op=%s tid=%d iid=0x%04x", r.Op, r.Tid, r.TargetIid)
}

// Bytes serializes a 16-bit-iid request PDU (used by the client-side
// tooling; the accessory itself only parses requests).
func (r *Request) Bytes() []byte {
	buf := make([]byte, 0, MIN_REQ_PDU_SIZE)

	buf = append(buf, 0)
	buf = append(buf, byte(r.Op))
	buf = append(buf, r.Tid)

	u16b := make([]byte, 2)
	binary.LittleEndian.PutUint16(u16b, r.TargetIid)
	buf = append(buf, u16b...)

	return buf
}

// Parse decodes a raw attribute-write payload into a request.  Only
// unfragmented request PDUs are accepted: continuations yield a
// FragmentedPduError (reassembly happens upstream, see Reassembler) and
// response PDUs yield a NotSupportedError rather than a misparse.
func Parse(data []byte) (*Request, error) {
	if len(data) < 1 {
		return nil, hapxutil.NewBadLengthError(
			"HAP PDU requires at least a control field")
	}

	cf, err := DecodeControlField(data[0])
	if err != nil {
		return nil, err
	}

	if cf.Frag == FRAG_CONTINUATION {
		return nil, hapxutil.NewFragmentedPduError(
			"continuation PDU outside a reassembly context")
	}

	if cf.PduType == PDU_TYPE_RESPONSE {
		return nil, hapxutil.NewNotSupportedError(
			"response PDU decoding not supported")
	}

	return parseReqAfterControl(data[1:], cf.IidWidth)
}

func parseReqAfterControl(data []byte, iidWidth IidWidth) (*Request, error) {
	if len(data) < REQ_HDR_SIZE {
		return nil, hapxutil.FmtBadLengthError(
			"HAP request header too short: %d bytes", len(data))
	}

	op, err := OpCodeFromByte(data[0])
	if err != nil {
		return nil, err
	}

	// The iid is 16 bits on the wire regardless of the width flag; the
	// flag is recorded but not consumed by request-header parsing.
	return &Request{
		IidWidth:  iidWidth,
		Op:        op,
		Tid:       data[1],
		TargetIid: binary.LittleEndian.Uint16(data[2:4]),
	}, nil
}

// Response is a HAP response PDU: the request's tid echoed back, a status
// code, and an optional body.  Constructed immediately before
// serialization; never retained.
type Response struct {
	Tid    uint8
	Status Status
	Body   []byte
}

func NewResponse(tid uint8, status Status, body []byte) *Response {
	return &Response{
		Tid:    tid,
		Status: status,
		Body:   body,
	}
}

// Size returns the number of bytes WriteInto produces: a 3-byte header
// plus, for non-empty bodies, a 2-byte length field and the body.
func (r *Response) Size() int {
	size := RSP_HDR_SIZE
	if len(r.Body) > 0 {
		size += 2 + len(r.Body)
	}

	return size
}

// WriteInto serializes the response into buf and returns the number of
// bytes used.  On an undersized buffer it returns InsufficientBufferError
// without writing anything.  A body over 65535 bytes cannot be framed and
// indicates a bug in response construction.
func (r *Response) WriteInto(buf []byte) (int, error) {
	if len(r.Body) > MAX_RSP_BODY_LEN {
		panic(fmt.Sprintf("HAP response body too long: %d bytes",
			len(r.Body)))
	}

	size := r.Size()
	if size > len(buf) {
		return 0, hapxutil.NewInsufficientBufferError(size, len(buf))
	}

	buf[0] = rspControlField
	buf[1] = r.Tid
	buf[2] = uint8(r.Status)

	if len(r.Body) > 0 {
		binary.LittleEndian.PutUint16(buf[3:5], uint16(len(r.Body)))
		copy(buf[5:], r.Body)
	}

	return size, nil
}
