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

package gatt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Uuid128 holds a 128-bit UUID in canonical (big-endian) byte order.
type Uuid128 [16]byte

func (u *Uuid128) String() string {
	var buf bytes.Buffer
	buf.Grow(len(u)*2 + 4)

	for i, b := range u {
		switch i {
		case 4, 6, 8, 10:
			buf.WriteString("-")
		}

		fmt.Fprintf(&buf, "%02x", b)
	}

	return buf.String()
}

// WireBytes returns the UUID in HAP-BLE wire order.  HAP transmits UUIDs
// little-endian, i.e. reversed relative to the canonical textual order.
func (u Uuid128) WireBytes() []byte {
	b := make([]byte, 16)
	for i := 0; i < 16; i++ {
		b[i] = u[15-i]
	}

	return b
}

func ParseUuid128(s string) (Uuid128, error) {
	var u Uuid128

	if len(s) != 36 {
		return u, fmt.Errorf("Invalid UUID: %s", s)
	}

	boff := 0
	for i := 0; i < 36; {
		switch i {
		case 8, 13, 18, 23:
			if s[i] != '-' {
				return u, fmt.Errorf("Invalid UUID: %s", s)
			}
			i++

		default:
			u64, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				return u, fmt.Errorf("Invalid UUID: %s", s)
			}
			u[boff] = byte(u64)
			i += 2
			boff++
		}
	}

	return u, nil
}

func (u *Uuid128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uuid128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	var err error
	*u, err = ParseUuid128(s)
	if err != nil {
		return err
	}

	return nil
}

// HAP characteristic properties (HAP spec section 7.4.4.6.1).
type Props uint16

const (
	PROP_READ                Props = 0x0001
	PROP_WRITE               Props = 0x0002
	PROP_ADDITIONAL_AUTHZ    Props = 0x0004
	PROP_TIMED_WRITE         Props = 0x0008
	PROP_SECURE_READ         Props = 0x0010
	PROP_SECURE_WRITE        Props = 0x0020
	PROP_HIDDEN              Props = 0x0040
	PROP_NOTIFY_CONNECTED    Props = 0x0080
	PROP_NOTIFY_DISCONNECTED Props = 0x0100
	PROP_NOTIFY_BROADCAST    Props = 0x0200
)

var propNameMap = []struct {
	mask Props
	name string
}{
	{PROP_READ, "read"},
	{PROP_WRITE, "write"},
	{PROP_ADDITIONAL_AUTHZ, "aa"},
	{PROP_TIMED_WRITE, "tw"},
	{PROP_SECURE_READ, "sr"},
	{PROP_SECURE_WRITE, "sw"},
	{PROP_HIDDEN, "hidden"},
	{PROP_NOTIFY_CONNECTED, "evc"},
	{PROP_NOTIFY_DISCONNECTED, "evd"},
	{PROP_NOTIFY_BROADCAST, "evb"},
}

func (p Props) String() string {
	var buf bytes.Buffer

	for _, e := range propNameMap {
		if p&e.mask != 0 {
			if buf.Len() > 0 {
				buf.WriteString("|")
			}
			buf.WriteString(e.name)
		}
	}

	if buf.Len() == 0 {
		return "none"
	}
	return buf.String()
}

// GATT characteristic presentation formats (Bluetooth assigned numbers).
type Format uint8

const (
	FORMAT_BOOL   Format = 0x01
	FORMAT_UINT8  Format = 0x04
	FORMAT_UINT16 Format = 0x06
	FORMAT_UINT32 Format = 0x08
	FORMAT_UINT64 Format = 0x0a
	FORMAT_INT    Format = 0x10
	FORMAT_FLOAT  Format = 0x14
	FORMAT_STRING Format = 0x19
	FORMAT_DATA   Format = 0x1b
)

// GATT presentation units used by HAP characteristics.
type Unit uint16

const (
	UNIT_UNITLESS   Unit = 0x2700
	UNIT_SECONDS    Unit = 0x2703
	UNIT_CELSIUS    Unit = 0x272f
	UNIT_LUX        Unit = 0x2731
	UNIT_ARC_DEGREE Unit = 0x2763
	UNIT_PERCENTAGE Unit = 0x27ad
)

// ChrDesc is the protocol-core view of a characteristic: the immutable
// metadata a signature read answers with.  Instance ids are assigned at
// setup time by the GATT-setup collaborator and unique per accessory.
type ChrDesc struct {
	Iid       uint16
	Uuid      Uuid128
	Format    Format
	Unit      Unit
	Props     Props
	MaxValLen int
}

func (c *ChrDesc) String() string {
	return fmt.Sprintf("iid=0x%04x uuid=%s props=%s", c.Iid, c.Uuid.String(),
		c.Props)
}

// SvcDesc is a service descriptor owning an ordered set of characteristics.
type SvcDesc struct {
	Iid     uint16
	Uuid    Uuid128
	Primary bool
	Chrs    []*ChrDesc
}

// FindChr resolves an instance id to an owned characteristic, or nil if the
// id belongs to no characteristic of this service.
func (s *SvcDesc) FindChr(iid uint16) *ChrDesc {
	for _, c := range s.Chrs {
		if c.Iid == iid {
			return c
		}
	}

	return nil
}

func (s *SvcDesc) AddChr(c *ChrDesc) *ChrDesc {
	s.Chrs = append(s.Chrs, c)
	return c
}
