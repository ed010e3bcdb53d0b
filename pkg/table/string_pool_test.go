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
	"fmt"
	"testing"
)

func Test_StringPool_01(t *testing.T) {
	pool := NewStringPool()
	// Empty string is always entry zero
	if pool.Count() != 1 || pool.Get(0) != "" {
		t.Error("expected pool to start with the empty string")
	}
	//
	if pool.Put("") != 0 {
		t.Error("expected empty string to intern as entry zero")
	}
}

func Test_StringPool_02(t *testing.T) {
	check_StringPool(t, 10)
}

func Test_StringPool_03(t *testing.T) {
	// Enough entries to force several rehashes
	check_StringPool(t, 1000)
}

func Test_StringPool_04(t *testing.T) {
	check_StringPool(t, 100000)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_StringPool(t *testing.T, n int) {
	var (
		pool    = NewStringPool()
		indices = make([]uint32, n)
	)
	// Intern n distinct strings
	for i := 0; i < n; i++ {
		indices[i] = pool.Put(fmt.Sprintf("item-%d", i))
	}
	// Sanity check entry count, including the empty string
	if pool.Count() != uint32(n)+1 {
		t.Errorf("expected %d entries, got %d", n+1, pool.Count())
	}
	// Interning again yields the original indices
	for i := 0; i < n; i++ {
		str := fmt.Sprintf("item-%d", i)
		//
		if index := pool.Put(str); index != indices[i] {
			t.Errorf("expected %q at entry %d, got %d", str, indices[i], index)
		}
		//
		if actual := pool.Get(indices[i]); actual != str {
			t.Errorf("expected entry %d to hold %q, got %q", indices[i], str, actual)
		}
	}
}
