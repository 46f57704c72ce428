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
	"encoding/binary"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/coffice12/hapble/hapact/gatt"
	"github.com/coffice12/hapble/hapact/hap"
	"github.com/coffice12/hapble/hapact/xport"
)

// Default instance ids for the Protocol Information service, matching the
// layout the GATT-setup collaborator assigns.
const (
	PROTO_SVC_IID = 0x10
	PROTO_SIG_IID = 0x11
	PROTO_VER_IID = 0x12
)

// Worst-case characteristic signature body: two 18-byte UUID items, a
// 4-byte iid item, a 4-byte props item, and a 9-byte GATT format item.
const chrSigBodyLen = 53

// Service signature body: 4-byte service properties item plus an empty
// linked-services item.
const svcSigBodyLen = 6

const rspBufLen = 70

// ProtocolSvc dispatches HAP requests addressed to the Protocol
// Information service or one of its two characteristics (the service
// signature and the protocol version).  Routing is two-level: target
// instance id first, opcode second.  All descriptor data is fixed at
// construction; the dispatcher holds no mutable state and must be invoked
// from a single serialized delivery point.
type ProtocolSvc struct {
	svc     *gatt.SvcDesc
	sig     *gatt.ChrDesc
	version *gatt.ChrDesc
	sink    xport.ValueSink
}

func NewProtocolSvc(sink xport.ValueSink) *ProtocolSvc {
	sig := &gatt.ChrDesc{
		Iid:       PROTO_SIG_IID,
		Uuid:      gatt.UuidServiceSignatureChr,
		Format:    gatt.FORMAT_DATA,
		Unit:      gatt.UNIT_UNITLESS,
		Props:     gatt.PROP_SECURE_READ,
		MaxValLen: 100,
	}

	version := &gatt.ChrDesc{
		Iid:       PROTO_VER_IID,
		Uuid:      gatt.UuidVersionChr,
		Format:    gatt.FORMAT_STRING,
		Unit:      gatt.UNIT_UNITLESS,
		Props:     gatt.PROP_SECURE_READ,
		MaxValLen: 100,
	}

	s := &gatt.SvcDesc{
		Iid:     PROTO_SVC_IID,
		Uuid:    gatt.UuidProtocolInformationSvc,
		Primary: true,
		Chrs:    []*gatt.ChrDesc{sig, version},
	}

	return &ProtocolSvc{
		svc:     s,
		sig:     sig,
		version: version,
		sink:    sink,
	}
}

func (ps *ProtocolSvc) Svc() *gatt.SvcDesc {
	return ps.svc
}

func (ps *ProtocolSvc) SigChr() *gatt.ChrDesc {
	return ps.sig
}

func (ps *ProtocolSvc) VersionChr() *gatt.ChrDesc {
	return ps.version
}

// Rx handles the payload of one attribute write.  A payload that doesn't
// parse as a HAP request is logged and dropped: the characteristic-level
// write path offers no channel for reporting framing errors back to the
// remote side.
func (ps *ProtocolSvc) Rx(data []byte) {
	req, err := hap.Parse(data)
	if err != nil {
		log.Debugf("failed to parse HAP PDU: %s\npacket=\n%s", err.Error(),
			hex.Dump(data))
		return
	}

	log.Debugf("HAP request: %s", req)

	switch req.Op {
	case hap.OP_SVC_SIG_READ:
		ps.onSvcSigRead(req)
	case hap.OP_CHR_SIG_READ:
		ps.onChrSigRead(req)
	default:
		// Remaining opcodes are not implemented by this service.
		log.Debugf("ignoring HAP request with unhandled opcode: %s", req)
	}
}

// onSvcSigRead answers a service signature read addressed to this
// service's own instance id.  A mismatched id means the request is for
// some other service; it is not an error.
func (ps *ProtocolSvc) onSvcSigRead(req *hap.Request) {
	if req.TargetIid != ps.svc.Iid {
		return
	}

	body := SvcSignatureBody()
	ps.writeRsp(hap.NewResponse(req.Tid, hap.STATUS_SUCCESS, body))
}

// SvcSignatureBody builds the TLV body of a service signature read
// response for the Protocol Information service: service properties and an
// empty linked-services item.
func SvcSignatureBody() []byte {
	var body [svcSigBodyLen]byte
	off := 0

	// This service supports configuration; it links to no other services.
	off += hap.NewTlvUint16(hap.TLV_PARAM_SVC_PROPS,
		hap.SVC_PROP_SUPPORTS_CONFIGURATION).EncodeTo(body[off:])
	off += hap.NewTlv(hap.TLV_PARAM_LINKED_SVCS, nil).EncodeTo(body[off:])

	if off != len(body) {
		panic(fmt.Sprintf("bad service signature body: off=%d", off))
	}

	return body[:]
}

// onChrSigRead answers a characteristic signature read for either owned
// characteristic.  An id matching neither is logged and dropped.
func (ps *ProtocolSvc) onChrSigRead(req *hap.Request) {
	var chr *gatt.ChrDesc
	switch req.TargetIid {
	case ps.sig.Iid:
		chr = ps.sig
	case ps.version.Iid:
		chr = ps.version
	default:
		log.Debugf("characteristic with iid 0x%04x is not part of this "+
			"service", req.TargetIid)
		return
	}

	body := ChrSignatureBody(ps.svc, chr)
	ps.writeRsp(hap.NewResponse(req.Tid, hap.STATUS_SUCCESS, body))
}

// ChrSignatureBody builds the TLV body of a characteristic signature read
// response: characteristic type, owning service iid, owning service type,
// HAP properties, and the GATT presentation format descriptor, in that
// order.
func ChrSignatureBody(s *gatt.SvcDesc, c *gatt.ChrDesc) []byte {
	var body [chrSigBodyLen]byte
	off := 0

	off += hap.NewTlv(hap.TLV_PARAM_CHR_TYPE,
		c.Uuid.WireBytes()).EncodeTo(body[off:])
	off += hap.NewTlvUint16(hap.TLV_PARAM_SVC_IID, s.Iid).EncodeTo(body[off:])
	off += hap.NewTlv(hap.TLV_PARAM_SVC_TYPE,
		s.Uuid.WireBytes()).EncodeTo(body[off:])
	off += hap.NewTlvUint16(hap.TLV_PARAM_CHR_PROPS,
		uint16(c.Props)).EncodeTo(body[off:])

	gf := gattFormatBytes(c)
	off += hap.NewTlv(hap.TLV_PARAM_GATT_FORMAT, gf[:]).EncodeTo(body[off:])

	if off != len(body) {
		panic(fmt.Sprintf("bad characteristic signature body: off=%d", off))
	}

	return body[:]
}

// gattFormatBytes lays out the 7-byte GATT presentation format descriptor:
// format, exponent (unused), 2-byte little-endian unit, namespace (always
// 1), 2-byte description (unused).
func gattFormatBytes(c *gatt.ChrDesc) [7]byte {
	var gf [7]byte

	gf[0] = uint8(c.Format)
	binary.LittleEndian.PutUint16(gf[2:4], uint16(c.Unit))
	gf[4] = 1

	return gf
}

// writeRsp frames the response and delivers it through the signature
// characteristic's value.  Signature-read answers always travel via the
// signature characteristic, regardless of which characteristic was
// queried; the remote reader fetches the value from there.
func (ps *ProtocolSvc) writeRsp(rsp *hap.Response) {
	var buf [rspBufLen]byte

	n, err := rsp.WriteInto(buf[:])
	if err != nil {
		log.Errorf("failed to frame HAP response: %s", err.Error())
		return
	}

	if err := ps.sink.SetChrValue(ps.svc.Iid, ps.sig.Iid, buf[:n]); err != nil {
		log.Errorf("failed to set signature characteristic value: %s",
			err.Error())
	}
}
