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

package hapxutil

import (
	"fmt"
)

// Indicates a buffer shorter than the minimum required for the structure
// being parsed.
type BadLengthError struct {
	Text string
}

func NewBadLengthError(text string) *BadLengthError {
	return &BadLengthError{
		Text: text,
	}
}

func FmtBadLengthError(format string, args ...interface{}) *BadLengthError {
	return NewBadLengthError(fmt.Sprintf(format, args...))
}

func (e *BadLengthError) Error() string {
	return e.Text
}

func IsBadLength(err error) bool {
	_, ok := err.(*BadLengthError)
	return ok
}

// Indicates a PDU control field with nonzero reserved type bits.  Code is
// the 3-bit value formed by control bits 1-3 shifted down by 1.
type UnsupportedPduTypeError struct {
	Text string
	Code uint8
}

func NewUnsupportedPduTypeError(code uint8) *UnsupportedPduTypeError {
	return &UnsupportedPduTypeError{
		Text: fmt.Sprintf("unsupported PDU type: 0x%02x", code),
		Code: code,
	}
}

func (e *UnsupportedPduTypeError) Error() string {
	return e.Text
}

func IsUnsupportedPduType(err error) bool {
	_, ok := err.(*UnsupportedPduTypeError)
	return ok
}

// Indicates an opcode byte outside the closed HAP opcode set.
type UnknownOpCodeError struct {
	Text  string
	Value uint8
}

func NewUnknownOpCodeError(value uint8) *UnknownOpCodeError {
	return &UnknownOpCodeError{
		Text:  fmt.Sprintf("unknown HAP opcode: 0x%02x", value),
		Value: value,
	}
}

func (e *UnknownOpCodeError) Error() string {
	return e.Text
}

func IsUnknownOpCode(err error) bool {
	_, ok := err.(*UnknownOpCodeError)
	return ok
}

// Indicates a continuation PDU arriving somewhere only first fragments are
// accepted.
type FragmentedPduError struct {
	Text string
}

func NewFragmentedPduError(text string) *FragmentedPduError {
	return &FragmentedPduError{
		Text: text,
	}
}

func (e *FragmentedPduError) Error() string {
	return e.Text
}

func IsFragmentedPdu(err error) bool {
	_, ok := err.(*FragmentedPduError)
	return ok
}

// Indicates a caller-supplied buffer too small for the structure being
// written.  Nothing is written when this is returned.
type InsufficientBufferError struct {
	Text string
	Need int
	Have int
}

func NewInsufficientBufferError(need int, have int) *InsufficientBufferError {
	return &InsufficientBufferError{
		Text: fmt.Sprintf("insufficient buffer; need=%d have=%d", need, have),
		Need: need,
		Have: have,
	}
}

func (e *InsufficientBufferError) Error() string {
	return e.Text
}

func IsInsufficientBuffer(err error) bool {
	_, ok := err.(*InsufficientBufferError)
	return ok
}

// Indicates a decode path that the protocol core deliberately does not
// implement (e.g., response PDU decoding).
type NotSupportedError struct {
	Text string
}

func NewNotSupportedError(text string) *NotSupportedError {
	return &NotSupportedError{
		Text: text,
	}
}

func FmtNotSupportedError(format string, args ...interface{}) *NotSupportedError {
	return NewNotSupportedError(fmt.Sprintf(format, args...))
}

func (e *NotSupportedError) Error() string {
	return e.Text
}

func IsNotSupported(err error) bool {
	_, ok := err.(*NotSupportedError)
	return ok
}
