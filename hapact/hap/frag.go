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
	"time"

	log "github.com/sirupsen/logrus"
)

// Default time after which a half-assembled PDU is abandoned.
const REASSEMBLY_TIMEOUT = 30 * time.Second

// A Reassembler merges fragmented incoming request PDUs back into a single
// buffer before parsing.  It keeps one pending buffer, keyed by the first
// fragment's transaction id; a continuation fragment carries the control
// field (bit 7 set), the tid, then a slice of the body.  The expected total
// length comes from the first fragment's body length field: a request with
// a body is control + opcode + tid + iid + 2-byte length + body.
//
// Policy for the cases the protocol leaves open: a pending buffer is
// abandoned when a new first fragment arrives, when a continuation's tid
// does not match, when the assembled size would exceed maxLen, or when the
// previous fragment is older than the timeout.
type Reassembler struct {
	cur      []byte
	tid      uint8
	expected int
	last     time.Time
	maxLen   int
	timeout  time.Duration
}

func NewReassembler() *Reassembler {
	return &Reassembler{
		maxLen:  MAX_PDU_SIZE,
		timeout: REASSEMBLY_TIMEOUT,
	}
}

func (r *Reassembler) reset() {
	r.cur = nil
	r.expected = 0
}

// RxFrag consumes one attribute-write payload.  It returns a complete PDU
// ready for Parse, or nil if more fragments are expected or the fragment
// was discarded.
func (r *Reassembler) RxFrag(frag []byte) []byte {
	if len(frag) < 1 {
		return nil
	}

	if r.cur != nil && time.Since(r.last) > r.timeout {
		log.Debugf("abandoning stale partial PDU; tid=%d len=%d",
			r.tid, len(r.cur))
		r.reset()
	}

	if frag[0]&ctlFragBit == 0 {
		return r.rxFirst(frag)
	}
	return r.rxContinuation(frag)
}

func (r *Reassembler) rxFirst(frag []byte) []byte {
	if r.cur != nil {
		log.Debugf("discarding partial PDU; tid=%d len=%d", r.tid,
			len(r.cur))
		r.reset()
	}

	// Bodiless requests are complete in one write.  A request carrying a
	// body declares the body length right after the 5-byte header.
	expected := len(frag)
	if frag[0]&ctlTypeBit == 0 && len(frag) >= MIN_REQ_PDU_SIZE+2 {
		bodyLen := binary.LittleEndian.Uint16(
			frag[MIN_REQ_PDU_SIZE : MIN_REQ_PDU_SIZE+2])
		expected = MIN_REQ_PDU_SIZE + 2 + int(bodyLen)
	}

	if expected > r.maxLen {
		log.Debugf("rejecting oversized PDU; expected=%d max=%d",
			expected, r.maxLen)
		return nil
	}

	if len(frag) >= expected {
		return frag
	}

	r.cur = append([]byte(nil), frag...)
	r.expected = expected
	if len(frag) >= 3 {
		r.tid = frag[2]
	}
	r.last = time.Now()

	return nil
}

func (r *Reassembler) rxContinuation(frag []byte) []byte {
	if r.cur == nil {
		log.Debugf("dropping continuation with no pending PDU")
		return nil
	}

	if len(frag) < 2 || frag[1] != r.tid {
		log.Debugf("dropping partial PDU; continuation tid mismatch")
		r.reset()
		return nil
	}

	r.cur = append(r.cur, frag[2:]...)
	r.last = time.Now()

	if len(r.cur) > r.expected {
		log.Debugf("received invalid PDU; expected=%d actual=%d",
			r.expected, len(r.cur))
		r.reset()
		return nil
	}

	if len(r.cur) < r.expected {
		// More fragments to come.
		return nil
	}

	pkt := r.cur
	r.reset()
	return pkt
}
