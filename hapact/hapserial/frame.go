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

package hapserial

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/joaojeronimo/go-crc16"
	log "github.com/sirupsen/logrus"
)

/* Line-oriented serial framing: a packet is CRC16-suffixed, length-
 * prefixed, base64 encoded and split across newline-terminated lines.
 * The first line of a packet starts with {6, 9}; continuation lines start
 * with {4, 20}. */

// EncodePacket produces the base64 body of a packet; the caller splits it
// into designator-prefixed lines.
func EncodePacket(data []byte) []byte {
	crcBuf := make([]byte, 2)

	crc := crc16.Crc16(data)
	binary.BigEndian.PutUint16(crcBuf, crc)

	pktData := make([]byte, 2, 4+len(data))
	binary.BigEndian.PutUint16(pktData, uint16(len(data)+2))
	pktData = append(pktData, data...)
	pktData = append(pktData, crcBuf...)

	base64Data := make([]byte, base64.StdEncoding.EncodedLen(len(pktData)))
	base64.StdEncoding.Encode(base64Data, pktData)

	return base64Data
}

// A FrameDecoder accumulates incoming lines into packets.  Feed it one
// line at a time; it returns a non-nil payload when a full packet with a
// valid CRC has been received.
type FrameDecoder struct {
	pkt *Packet
}

// Feed processes one received line.  Lines that are not part of the
// framing protocol are silently ignored.
func (fd *FrameDecoder) Feed(line []byte) ([]byte, error) {
	for len(line) > 1 && line[0] == '\r' {
		line = line[1:]
	}

	if len(line) < 2 || ((line[0] != 4 || line[1] != 20) &&
		(line[0] != 6 || line[1] != 9)) {

		return nil, nil
	}

	base64Data := string(line[2:])

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode base64 string:"+
			" %s\nPacket hex dump:\n%s",
			base64Data, hex.Dump(line))
	}

	if line[0] == 6 && line[1] == 9 {
		if len(data) < 2 {
			return nil, nil
		}

		pktLen := binary.BigEndian.Uint16(data[0:2])
		fd.pkt = NewPacket(pktLen)
		data = data[2:]
	}

	if fd.pkt == nil {
		return nil, nil
	}

	full := fd.pkt.AddBytes(data)
	if !full {
		return nil, nil
	}

	if crc16.Crc16(fd.pkt.GetBytes()) != 0 {
		fd.pkt = nil
		return nil, fmt.Errorf("CRC error")
	}

	/*
	 * Trim away the 2 bytes of CRC
	 */
	fd.pkt.TrimEnd(2)
	b := fd.pkt.GetBytes()
	fd.pkt = nil

	log.Debugf("Decoded input:\n%s", hex.Dump(b))
	return b, nil
}
