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
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/coffice12/hapble/hapact/gatt"
	"github.com/coffice12/hapble/hapact/hap"
)

// Accessory Information service instance ids.
const (
	INFO_SVC_IID          = 0x01
	INFO_IDENTIFY_IID     = 0x02
	INFO_MANUFACTURER_IID = 0x03
	INFO_MODEL_IID        = 0x04
	INFO_NAME_IID         = 0x05
	INFO_SERIAL_IID       = 0x06
	INFO_FIRMWARE_IID     = 0x07
	INFO_HARDWARE_IID     = 0x08
)

// Pairing service instance ids.
const (
	PAIRING_SVC_IID      = 0x20
	PAIRING_SETUP_IID    = 0x22
	PAIRING_VERIFY_IID   = 0x23
	PAIRING_FEATURES_IID = 0x24
	PAIRING_PAIRINGS_IID = 0x25
)

// Static accessory metadata served through the Accessory Information
// characteristics.
type AccessoryInfo struct {
	Name             string
	Manufacturer     string
	Model            string
	SerialNumber     string
	FirmwareRevision string
	HardwareRevision string
}

// Protocol version reported by the Protocol Information service.
const protocolVersion = "2.2.0"

// An Accessory owns the three fixed services of a minimal HAP-BLE
// accessory (accessory information, protocol information, pairing), a
// store of current characteristic values, and the reassembly layer in
// front of the PDU parser.  It implements xport.ValueSink so the protocol
// dispatcher's responses land in the value store; transports observe value
// changes through the OnValueChanged hook and serve reads from ChrValue.
//
// All dispatch into an Accessory must come from a single serialized
// delivery point (a task.DispatchQueue in the bundled transports); the
// accessory itself takes no locks.
type Accessory struct {
	info     AccessoryInfo
	protocol *ProtocolSvc
	infoSvc  *gatt.SvcDesc
	pairSvc  *gatt.SvcDesc
	reasm    *hap.Reassembler
	values   map[uint16][]byte
	onValue  []func(svcIid uint16, chrIid uint16, value []byte)
}

func NewAccessory(info AccessoryInfo) *Accessory {
	a := &Accessory{
		info:   info,
		reasm:  hap.NewReassembler(),
		values: map[uint16][]byte{},
	}

	a.protocol = NewProtocolSvc(a)
	a.infoSvc = buildInfoSvc()
	a.pairSvc = buildPairingSvc()

	a.values[PROTO_VER_IID] = []byte(protocolVersion)
	a.values[INFO_MANUFACTURER_IID] = []byte(info.Manufacturer)
	a.values[INFO_MODEL_IID] = []byte(info.Model)
	a.values[INFO_NAME_IID] = []byte(info.Name)
	a.values[INFO_SERIAL_IID] = []byte(info.SerialNumber)
	a.values[INFO_FIRMWARE_IID] = []byte(info.FirmwareRevision)
	a.values[INFO_HARDWARE_IID] = []byte(info.HardwareRevision)

	return a
}

func buildInfoSvc() *gatt.SvcDesc {
	s := &gatt.SvcDesc{
		Iid:     INFO_SVC_IID,
		Uuid:    gatt.UuidAccessoryInformationSvc,
		Primary: true,
	}

	s.AddChr(&gatt.ChrDesc{
		Iid:       INFO_IDENTIFY_IID,
		Uuid:      gatt.UuidIdentifyChr,
		Format:    gatt.FORMAT_BOOL,
		Unit:      gatt.UNIT_UNITLESS,
		Props:     gatt.PROP_WRITE,
		MaxValLen: 1,
	})

	strChr := func(iid uint16, uuid gatt.Uuid128, maxLen int) *gatt.ChrDesc {
		return &gatt.ChrDesc{
			Iid:       iid,
			Uuid:      uuid,
			Format:    gatt.FORMAT_STRING,
			Unit:      gatt.UNIT_UNITLESS,
			Props:     gatt.PROP_SECURE_READ,
			MaxValLen: maxLen,
		}
	}

	s.AddChr(strChr(INFO_MANUFACTURER_IID, gatt.UuidManufacturerChr, 64))
	s.AddChr(strChr(INFO_MODEL_IID, gatt.UuidModelChr, 10))
	s.AddChr(strChr(INFO_NAME_IID, gatt.UuidNameChr, 10))
	s.AddChr(strChr(INFO_SERIAL_IID, gatt.UuidSerialNumberChr, 15))
	s.AddChr(strChr(INFO_FIRMWARE_IID, gatt.UuidFirmwareRevisionChr, 10))
	s.AddChr(strChr(INFO_HARDWARE_IID, gatt.UuidHardwareRevisionChr, 10))

	return s
}

// The pairing characteristics exist for signature purposes only; the
// pair-setup and pair-verify procedures themselves are not part of this
// core.
func buildPairingSvc() *gatt.SvcDesc {
	s := &gatt.SvcDesc{
		Iid:     PAIRING_SVC_IID,
		Uuid:    gatt.UuidPairingSvc,
		Primary: true,
	}

	dataChr := func(iid uint16, uuid gatt.Uuid128, props gatt.Props,
		format gatt.Format) *gatt.ChrDesc {

		return &gatt.ChrDesc{
			Iid:       iid,
			Uuid:      uuid,
			Format:    format,
			Unit:      gatt.UNIT_UNITLESS,
			Props:     props,
			MaxValLen: 1,
		}
	}

	s.AddChr(dataChr(PAIRING_SETUP_IID, gatt.UuidPairSetupChr,
		gatt.PROP_SECURE_READ, gatt.FORMAT_DATA))
	s.AddChr(dataChr(PAIRING_VERIFY_IID, gatt.UuidPairVerifyChr,
		gatt.PROP_READ|gatt.PROP_WRITE, gatt.FORMAT_DATA))
	s.AddChr(dataChr(PAIRING_FEATURES_IID, gatt.UuidPairingFeaturesChr,
		gatt.PROP_READ|gatt.PROP_WRITE, gatt.FORMAT_UINT8))
	s.AddChr(dataChr(PAIRING_PAIRINGS_IID, gatt.UuidPairingPairingsChr,
		gatt.PROP_READ|gatt.PROP_WRITE, gatt.FORMAT_DATA))

	return s
}

func (a *Accessory) Info() AccessoryInfo {
	return a.info
}

func (a *Accessory) Protocol() *ProtocolSvc {
	return a.protocol
}

// Services returns the accessory's service descriptors in declaration
// order.
func (a *Accessory) Services() []*gatt.SvcDesc {
	return []*gatt.SvcDesc{a.infoSvc, a.protocol.Svc(), a.pairSvc}
}

// FindChr resolves a characteristic instance id across all owned services.
func (a *Accessory) FindChr(iid uint16) (*gatt.SvcDesc, *gatt.ChrDesc) {
	for _, s := range a.Services() {
		if c := s.FindChr(iid); c != nil {
			return s, c
		}
	}

	return nil, nil
}

// SetChrValue stores a characteristic value and notifies the transport
// hook.  This is the protocol dispatcher's output boundary.
func (a *Accessory) SetChrValue(svcIid uint16, chrIid uint16,
	value []byte) error {

	_, chr := a.FindChr(chrIid)
	if chr == nil {
		return fmt.Errorf("no characteristic with iid 0x%04x", chrIid)
	}
	if len(value) > chr.MaxValLen {
		return fmt.Errorf("value too long for characteristic 0x%04x: "+
			"len=%d max=%d", chrIid, len(value), chr.MaxValLen)
	}

	a.values[chrIid] = append([]byte(nil), value...)

	for _, fn := range a.onValue {
		fn(svcIid, chrIid, a.values[chrIid])
	}

	return nil
}

// ChrValue returns the current value of a characteristic, or nil if none
// has been set.
func (a *Accessory) ChrValue(chrIid uint16) []byte {
	return a.values[chrIid]
}

// OnValueChanged registers a hook invoked after every value store.  Hooks
// run in registration order.  Registration must happen before the
// transport starts delivering writes.
func (a *Accessory) OnValueChanged(fn func(svcIid uint16, chrIid uint16,
	value []byte)) {

	a.onValue = append(a.onValue, fn)
}

// Rx consumes the payload of one incoming attribute write.  Fragmented
// PDUs are reassembled first; complete PDUs go to the protocol dispatcher,
// which ignores requests addressed to instance ids it does not own.
func (a *Accessory) Rx(data []byte) {
	pdu := a.reasm.RxFrag(data)
	if pdu == nil {
		return
	}

	log.Debugf("accessory rx pdu; len=%d", len(pdu))
	a.protocol.Rx(pdu)
}
