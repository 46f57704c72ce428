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

// Package adv builds HAP-BLE advertising data.  An unpaired accessory
// advertises a manufacturer-specific AD structure carrying its device id,
// category and state counters so that controllers can discover it without
// connecting.
package adv

import (
	"encoding/binary"
	"fmt"
)

const APPLE_COMPANY_ID = 0x004c

const (
	advTypeFlags        = 0x01
	advTypeSvcUuids128  = 0x07
	advTypeMfgData      = 0xff
	hapAdvSubtype       = 0x06
	hapAdvSubtypeLength = 0x2d
)

// Advertised status flag: accessory has not been paired.
const STATUS_FLAG_UNPAIRED = 0x01

// Fields is the HAP payload of the manufacturer-specific AD structure.
type Fields struct {
	StatusFlags uint8
	DeviceId    [6]byte
	Category    uint16
	Gsn         uint16
	ConfigNum   uint8
	CompatVer   uint8
}

func (f *Fields) String() string {
	return fmt.Sprintf("dev=%02x:%02x:%02x:%02x:%02x:%02x cat=%d gsn=%d "+
		"cn=%d cv=%d sf=0x%02x",
		f.DeviceId[0], f.DeviceId[1], f.DeviceId[2],
		f.DeviceId[3], f.DeviceId[4], f.DeviceId[5],
		f.Category, f.Gsn, f.ConfigNum, f.CompatVer, f.StatusFlags)
}

// Payload encodes the HAP fields that follow the company identifier inside
// the manufacturer-specific AD structure.
func (f *Fields) Payload() []byte {
	b := make([]byte, 0, 15)
	b = append(b, hapAdvSubtype, hapAdvSubtypeLength, f.StatusFlags)
	b = append(b, f.DeviceId[:]...)
	b = binary.BigEndian.AppendUint16(b, f.Category)
	b = binary.BigEndian.AppendUint16(b, f.Gsn)
	b = append(b, f.ConfigNum, f.CompatVer)

	return b
}

// Segment encodes the complete manufacturer-specific AD structure,
// including the length and type prefix and the little-endian company
// identifier.
func (f *Fields) Segment() []byte {
	payload := f.Payload()

	b := make([]byte, 0, len(payload)+4)
	b = append(b, byte(len(payload)+3), advTypeMfgData)
	b = binary.LittleEndian.AppendUint16(b, APPLE_COMPANY_ID)
	b = append(b, payload...)

	return b
}

// Flags encodes the AD flags structure for a general-discoverable,
// BR/EDR-incapable device.
func Flags() []byte {
	return []byte{2, advTypeFlags, 0x06}
}

// ServiceUuids encodes a complete list of 128-bit service UUIDs AD
// structure.  The uuids must already be in wire (little-endian) order.
func ServiceUuids(uuids ...[16]byte) []byte {
	b := make([]byte, 0, 2+16*len(uuids))
	b = append(b, byte(1+16*len(uuids)), advTypeSvcUuids128)
	for _, u := range uuids {
		b = append(b, u[:]...)
	}

	return b
}
