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

// Apple-defined HAP types, all on the Apple base UUID
// xxxxxxxx-0000-1000-8000-0026bb765291.

func mustUuid(s string) Uuid128 {
	u, err := ParseUuid128(s)
	if err != nil {
		panic(err.Error())
	}

	return u
}

// Services.
var (
	UuidAccessoryInformationSvc = mustUuid("0000003e-0000-1000-8000-0026bb765291")
	UuidProtocolInformationSvc  = mustUuid("000000a2-0000-1000-8000-0026bb765291")
	UuidPairingSvc              = mustUuid("00000055-0000-1000-8000-0026bb765291")
)

// Accessory Information characteristics.
var (
	UuidIdentifyChr         = mustUuid("00000014-0000-1000-8000-0026bb765291")
	UuidManufacturerChr     = mustUuid("00000020-0000-1000-8000-0026bb765291")
	UuidModelChr            = mustUuid("00000021-0000-1000-8000-0026bb765291")
	UuidNameChr             = mustUuid("00000023-0000-1000-8000-0026bb765291")
	UuidSerialNumberChr     = mustUuid("00000030-0000-1000-8000-0026bb765291")
	UuidFirmwareRevisionChr = mustUuid("00000052-0000-1000-8000-0026bb765291")
	UuidHardwareRevisionChr = mustUuid("00000053-0000-1000-8000-0026bb765291")
)

// Protocol Information characteristics.
var (
	UuidServiceSignatureChr = mustUuid("0000004a-0000-1000-8000-0026bb765291")
	UuidVersionChr          = mustUuid("00000037-0000-1000-8000-0026bb765291")
)

// Pairing characteristics.
var (
	UuidPairSetupChr       = mustUuid("0000004c-0000-1000-8000-0026bb765291")
	UuidPairVerifyChr      = mustUuid("0000004e-0000-1000-8000-0026bb765291")
	UuidPairingFeaturesChr = mustUuid("0000004f-0000-1000-8000-0026bb765291")
	UuidPairingPairingsChr = mustUuid("00000050-0000-1000-8000-0026bb765291")
)

// HAP-BLE bookkeeping attributes.
var (
	UuidServiceInstanceIdChr        = mustUuid("e604e95d-a759-4817-87d3-aa005083a0d1")
	UuidCharacteristicInstanceIdDsc = mustUuid("dc46f0fe-81d2-4616-b5d9-6abdd796939a")
)
