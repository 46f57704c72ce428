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
	"testing"
)

func TestUuidRoundTrip(t *testing.T) {
	s := "e604e95d-a759-4817-87d3-aa005083a0d1"

	u, err := ParseUuid128(s)
	if err != nil {
		t.Fatalf("ParseUuid128 failed: %s", err.Error())
	}

	if u.String() != s {
		t.Errorf("round trip mismatch: have=%s want=%s", u.String(), s)
	}
}

func TestUuidParseInvalid(t *testing.T) {
	cases := []string{
		"",
		"e604e95d-a759-4817-87d3-aa005083a0",
		"e604e95d+a759-4817-87d3-aa005083a0d1",
		"g604e95d-a759-4817-87d3-aa005083a0d1",
	}

	for _, s := range cases {
		if _, err := ParseUuid128(s); err == nil {
			t.Errorf("expected parse failure for \"%s\"", s)
		}
	}
}

func TestUuidWireBytes(t *testing.T) {
	// The HAP base UUID ends in ...0026bb765291; on the wire it leads with
	// the reversed tail.
	want := []byte{
		0x91, 0x52, 0x76, 0xbb, 0x26, 0x00, 0x00, 0x80,
		0x00, 0x10, 0x00, 0x00, 0xa2, 0x00, 0x00, 0x00,
	}

	if !bytes.Equal(UuidProtocolInformationSvc.WireBytes(), want) {
		t.Errorf("wrong wire order:\nhave=%x\nwant=%x",
			UuidProtocolInformationSvc.WireBytes(), want)
	}
}

func TestUuidJson(t *testing.T) {
	u := UuidVersionChr

	j, err := u.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %s", err.Error())
	}

	var out Uuid128
	if err := out.UnmarshalJSON(j); err != nil {
		t.Fatalf("UnmarshalJSON failed: %s", err.Error())
	}

	if out != u {
		t.Errorf("round trip mismatch: have=%s want=%s",
			out.String(), u.String())
	}
}

func TestPropsString(t *testing.T) {
	p := PROP_SECURE_READ | PROP_NOTIFY_CONNECTED

	s := p.String()
	if s != "sr|evc" {
		t.Errorf("wrong props string: %s", s)
	}
}

func TestSvcDescFindChr(t *testing.T) {
	s := &SvcDesc{
		Iid:  0x10,
		Uuid: UuidProtocolInformationSvc,
	}

	c := s.AddChr(&ChrDesc{
		Iid:  0x11,
		Uuid: UuidServiceSignatureChr,
	})

	if s.FindChr(0x11) != c {
		t.Errorf("FindChr missed characteristic 0x11")
	}
	if s.FindChr(0x12) != nil {
		t.Errorf("FindChr invented characteristic 0x12")
	}
}
