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
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	cases := []struct {
		err  error
		pred func(error) bool
	}{
		{NewBadLengthError("x"), IsBadLength},
		{FmtBadLengthError("%d", 3), IsBadLength},
		{NewUnsupportedPduTypeError(6), IsUnsupportedPduType},
		{NewUnknownOpCodeError(0xff), IsUnknownOpCode},
		{NewFragmentedPduError("x"), IsFragmentedPdu},
		{NewInsufficientBufferError(7, 6), IsInsufficientBuffer},
		{NewNotSupportedError("x"), IsNotSupported},
	}

	preds := []func(error) bool{
		IsBadLength, IsUnsupportedPduType, IsUnknownOpCode,
		IsFragmentedPdu, IsInsufficientBuffer, IsNotSupported,
	}

	for i, c := range cases {
		if !c.pred(c.err) {
			t.Errorf("case %d: own predicate rejected %v", i, c.err)
		}

		others := 0
		for _, p := range preds {
			if p(c.err) {
				others++
			}
		}
		if others != 1 {
			t.Errorf("case %d: %d predicates matched %v", i, others, c.err)
		}

		if c.pred(nil) {
			t.Errorf("case %d: predicate matched nil", i)
		}
		if c.pred(fmt.Errorf("generic")) {
			t.Errorf("case %d: predicate matched generic error", i)
		}
	}
}

func TestUnsupportedPduTypeCode(t *testing.T) {
	err := NewUnsupportedPduTypeError(6)
	if err.Code != 6 {
		t.Errorf("wrong code: %d", err.Code)
	}
}

func TestNextTid(t *testing.T) {
	a := NextTid()
	b := NextTid()

	if b != a+1 {
		t.Errorf("tids not sequential: %d then %d", a, b)
	}
}
