//go:build !windows
// +build !windows

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

package bll

import (
	"bytes"
	"testing"

	"github.com/coffice12/hapble/hapact/gatt"
	"github.com/coffice12/hapble/hapact/svc"
)

func testXport() *BllXport {
	acc := svc.NewAccessory(svc.AccessoryInfo{
		Name:             "test",
		Manufacturer:     "test",
		Model:            "test",
		SerialNumber:     "000000",
		FirmwareRevision: "1",
		HardwareRevision: "1",
	})

	return NewBllXport(acc, NewXportCfg())
}

func TestBuildBleSvc(t *testing.T) {
	bx := testXport()
	sd := bx.acc.Protocol().Svc()

	s := bx.buildBleSvc(sd)

	if !bytes.Equal(s.UUID, sd.Uuid.WireBytes()) {
		t.Errorf("wrong service uuid: %x", []byte(s.UUID))
	}

	// One instance id characteristic plus the descriptor's own.
	if len(s.Characteristics) != len(sd.Chrs)+1 {
		t.Fatalf("wrong characteristic count: have=%d want=%d",
			len(s.Characteristics), len(sd.Chrs)+1)
	}

	iidChr := s.Characteristics[0]
	if !bytes.Equal(iidChr.UUID, gatt.UuidServiceInstanceIdChr.WireBytes()) {
		t.Errorf("first characteristic is not the service instance id")
	}
	if !bytes.Equal(iidChr.Value, []byte{0x10, 0x00}) {
		t.Errorf("wrong service instance id value: %x", iidChr.Value)
	}
}

func TestBuildBleChr(t *testing.T) {
	bx := testXport()
	sd := bx.acc.Protocol().Svc()
	cd := bx.acc.Protocol().SigChr()

	c := bx.buildBleChr(sd, cd)

	if !bytes.Equal(c.UUID, cd.Uuid.WireBytes()) {
		t.Errorf("wrong characteristic uuid: %x", []byte(c.UUID))
	}
	if c.ReadHandler == nil {
		t.Errorf("readable characteristic has no read handler")
	}
	if c.WriteHandler == nil {
		t.Errorf("characteristic has no write handler")
	}

	if len(c.Descriptors) != 1 {
		t.Fatalf("wrong descriptor count: %d", len(c.Descriptors))
	}
	d := c.Descriptors[0]
	if !bytes.Equal(d.UUID,
		gatt.UuidCharacteristicInstanceIdDsc.WireBytes()) {

		t.Errorf("wrong descriptor uuid: %x", []byte(d.UUID))
	}
	if !bytes.Equal(d.Value, []byte{0x11, 0x00}) {
		t.Errorf("wrong instance id descriptor value: %x", d.Value)
	}
}

func TestBuildBleChrWriteOnly(t *testing.T) {
	bx := testXport()

	sd, cd := bx.acc.FindChr(svc.INFO_IDENTIFY_IID)
	if cd == nil {
		t.Fatalf("identify characteristic not found")
	}

	c := bx.buildBleChr(sd, cd)
	if c.ReadHandler != nil {
		t.Errorf("write-only characteristic has a read handler")
	}
	if c.WriteHandler == nil {
		t.Errorf("write-only characteristic has no write handler")
	}
}
