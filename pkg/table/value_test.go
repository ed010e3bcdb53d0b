// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package table

import (
	"math"
	"testing"
)

func Test_Value_01(t *testing.T) {
	// Constructors round trip through their accessors
	if Int64(-42).AsInt64() != -42 {
		t.Error("int64 value did not round trip")
	}
	//
	if Uint32(math.MaxUint32).AsUint32() != math.MaxUint32 {
		t.Error("uint32 value did not round trip")
	}
	//
	if String("hello").AsString() != "hello" {
		t.Error("string value did not round trip")
	}
}

func Test_Value_02(t *testing.T) {
	// Only the null value reports as null
	if !Null().IsNull() {
		t.Error("expected null to report null")
	}
	//
	if Int64(0).IsNull() || Uint32(0).IsNull() || String("").IsNull() {
		t.Error("expected zero values to report non-null")
	}
}

func Test_Value_03(t *testing.T) {
	// Signed comparison respects negative values
	if Int64(-1).Cmp(Int64(1)) >= 0 {
		t.Error("expected -1 < 1")
	}
	//
	if Int64(5).Cmp(Int64(5)) != 0 {
		t.Error("expected 5 == 5")
	}
	//
	if Uint32(7).Cmp(Uint32(3)) <= 0 {
		t.Error("expected 7 > 3")
	}
	//
	if String("abc").Cmp(String("abd")) >= 0 {
		t.Error("expected abc < abd")
	}
}

func Test_Value_04(t *testing.T) {
	// Human-readable forms
	if Null().String() != "null" {
		t.Errorf("unexpected rendering %q", Null().String())
	}
	//
	if Int64(-7).String() != "-7" {
		t.Errorf("unexpected rendering %q", Int64(-7).String())
	}
	//
	if String("hi").String() != "\"hi\"" {
		t.Errorf("unexpected rendering %q", String("hi").String())
	}
}

func Test_Value_05(t *testing.T) {
	// Accessing a value as the wrong kind is a programming error
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	//
	String("hello").AsInt64()
}
