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

import "math"

// STRING_POOL_INIT_BUCKETS determines the initial number of buckets to use
// for the hash index of a string pool.  This is chosen fairly arbitrarily.
const STRING_POOL_INIT_BUCKETS = 128

// STRING_POOL_LOADING determines the loading point, over which rehashing will
// occur (i.e. the number of buckets is increased).  This is expressed as a
// percentage of strings per bucket.
const STRING_POOL_LOADING = 75

// StringPool interns the strings stored across the columns of one or more
// tables, such that each distinct string is held exactly once and columns
// store compact indices into the pool.  Index 0 always holds the empty
// string.  A pool only ever grows.
type StringPool struct {
	// heap of interned strings
	strings []string
	// hash buckets
	buckets [][]uint32
}

// NewStringPool constructs an empty pool, seeded with the empty string at
// index 0.
func NewStringPool() *StringPool {
	p := &StringPool{
		strings: nil,
		buckets: make([][]uint32, STRING_POOL_INIT_BUCKETS),
	}
	// Initialise first index
	p.Put("")
	//
	return p
}

// Get returns the string interned at a given index, and panics if the index
// was never issued by this pool.
func (p *StringPool) Get(index uint32) string {
	return p.strings[index]
}

// Put interns a string, returning its index.  Interning the same string
// twice returns the same index.
func (p *StringPool) Put(str string) uint32 {
	index, hash := p.has(str)
	//
	if index == math.MaxUint32 {
		// String not present, so add it.
		index = uint32(len(p.strings))
		p.strings = append(p.strings, str)
		// Record entry in relevant bucket
		p.buckets[hash] = append(p.buckets[hash], index)
		// Rehash (if necessary)
		p.rehashIfOverloaded()
	}
	//
	return index
}

// Count returns the number of distinct strings interned so far, including
// the empty string.
func (p *StringPool) Count() uint32 {
	return uint32(len(p.strings))
}

// Check whether the hash index exceeds its loading factor and, if so, rehash.
func (p *StringPool) rehashIfOverloaded() {
	load := (100 * len(p.strings)) / len(p.buckets)
	//
	if load > STRING_POOL_LOADING {
		// Force a rehash
		p.rehash()
	}
}

// Check whether a given string is already interned, returning its index (or
// MaxUint32) along with its bucket.
func (p *StringPool) has(str string) (uint32, uint64) {
	hash := hashString(str) % uint64(len(p.buckets))
	// Attempt to lookup string
	for _, index := range p.buckets[hash] {
		if p.strings[index] == str {
			return index, hash
		}
	}
	//
	return math.MaxUint32, hash
}

func (p *StringPool) rehash() {
	var (
		oldBuckets = p.buckets
		n          = uint64(len(oldBuckets) * 3)
	)
	// Increase number of buckets
	p.buckets = make([][]uint32, n)
	// Rehash!
	for _, bucket := range oldBuckets {
		for _, index := range bucket {
			// Determine new hash
			hash := hashString(p.strings[index]) % n
			// Record index in relevant bucket
			p.buckets[hash] = append(p.buckets[hash], index)
		}
	}
}

// Hash a string using FNV-1a.
func hashString(str string) uint64 {
	hash := uint64(14695981039346656037)
	//
	for i := 0; i < len(str); i++ {
		hash ^= uint64(str[i])
		hash *= 1099511628211
	}
	//
	return hash
}
