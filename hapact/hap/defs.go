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
	"github.com/coffice12/hapble/hapact/hapxutil"
)

// HAP opcodes (HAP spec Table 7-8).
type OpCode uint8

const (
	OP_CHR_SIG_READ    OpCode = 1
	OP_CHR_WRITE       OpCode = 2
	OP_CHR_READ        OpCode = 3
	OP_CHR_TIMED_WRITE OpCode = 4
	OP_CHR_EXEC_WRITE  OpCode = 5
	OP_SVC_SIG_READ    OpCode = 6
	OP_CHR_CONFIG      OpCode = 7
	OP_PROTO_CONFIG    OpCode = 8
)

var opCodeNameMap = map[OpCode]string{
	OP_CHR_SIG_READ:    "chr-sig-read",
	OP_CHR_WRITE:       "chr-write",
	OP_CHR_READ:        "chr-read",
	OP_CHR_TIMED_WRITE: "chr-timed-write",
	OP_CHR_EXEC_WRITE:  "chr-exec-write",
	OP_SVC_SIG_READ:    "svc-sig-read",
	OP_CHR_CONFIG:      "chr-config",
	OP_PROTO_CONFIG:    "proto-config",
}

func (op OpCode) String() string {
	if s := opCodeNameMap[op]; s != "" {
		return s
	}
	return "???"
}

// OpCodeFromByte validates a wire opcode against the closed opcode set.
func OpCodeFromByte(value uint8) (OpCode, error) {
	op := OpCode(value)
	if _, ok := opCodeNameMap[op]; !ok {
		return 0, hapxutil.NewUnknownOpCodeError(value)
	}

	return op, nil
}

func OpCodeFromString(s string) (OpCode, error) {
	for k, v := range opCodeNameMap {
		if s == v {
			return k, nil
		}
	}

	return 0, hapxutil.FmtNotSupportedError("invalid opcode name: %s", s)
}

// HAP response status codes (HAP spec Table 7-37).  The accessory only ever
// serializes these; it never parses a status off the wire.
type Status uint8

const (
	STATUS_SUCCESS             Status = 0
	STATUS_UNSUPPORTED_PDU     Status = 1
	STATUS_MAX_PROCEDURES      Status = 2
	STATUS_INSUFFICIENT_AUTHZ  Status = 3
	STATUS_INVALID_INSTANCE_ID Status = 4
	STATUS_INSUFFICIENT_AUTHEN Status = 5
	STATUS_INVALID_REQUEST     Status = 6
)

func (s Status) String() string {
	switch s {
	case STATUS_SUCCESS:
		return "success"
	case STATUS_UNSUPPORTED_PDU:
		return "unsupported-pdu"
	case STATUS_MAX_PROCEDURES:
		return "max-procedures"
	case STATUS_INSUFFICIENT_AUTHZ:
		return "insufficient-authorization"
	case STATUS_INVALID_INSTANCE_ID:
		return "invalid-instance-id"
	case STATUS_INSUFFICIENT_AUTHEN:
		return "insufficient-authentication"
	case STATUS_INVALID_REQUEST:
		return "invalid-request"
	default:
		return "???"
	}
}

// HAP-BLE additional parameter types used in signature bodies
// (HAP spec Table 7-35).
const (
	TLV_PARAM_CHR_TYPE    = 0x04
	TLV_PARAM_CHR_IID     = 0x05
	TLV_PARAM_SVC_TYPE    = 0x06
	TLV_PARAM_SVC_IID     = 0x07
	TLV_PARAM_CHR_PROPS   = 0x0a
	TLV_PARAM_DESCRIPTION = 0x0b
	TLV_PARAM_GATT_FORMAT = 0x0c
	TLV_PARAM_VALID_RANGE = 0x0d
	TLV_PARAM_STEP_VALUE  = 0x0e
	TLV_PARAM_SVC_PROPS   = 0x0f
	TLV_PARAM_LINKED_SVCS = 0x10
)

// Service properties bit (HAP spec section 7.4.3).
const SVC_PROP_SUPPORTS_CONFIGURATION = 0x0004
