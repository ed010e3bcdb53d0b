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
package tsf

import (
	"bytes"
	"fmt"

	"github.com/consensys/go-tracetables/pkg/table"
	"github.com/golang/snappy"
)

// TSF_MAJOR_VERSION gives the major version of the binary file format.  No
// matter what version, we should always have the TRACETBL identifier first,
// followed by the header.  What follows after that, however, is determined
// by the major version.
const TSF_MAJOR_VERSION uint16 = 1

// TSF_MINOR_VERSION gives the minor version of the binary file format.  The
// expected interpretation is that older versions are compatible with newer
// ones, but not vice-versa.
const TSF_MINOR_VERSION uint16 = 0

// TRACETBL is used as the file identifier for binary file types.  This just
// helps us identify actual binary files from corrupted files.
var TRACETBL [8]byte = [8]byte{'t', 'r', 'a', 'c', 'e', 't', 'b', 'l'}

// TableFile is a programmatic representation of an underlying table file.
// The payload after the header carries the flattened table declarations, the
// string pool and every column array, compressed as one snappy block.  Hence
// a table file is self-describing: reading one rebuilds the registry it was
// written from, without access to the original declarations.
type TableFile struct {
	// Header for the binary file
	Header Header
	// Registry holding the table data
	Registry *table.Registry
}

// NewTableFile constructs a new table file with the default header for the
// currently supported version.
func NewTableFile(metadata []byte, registry *table.Registry) TableFile {
	return TableFile{
		Header{TRACETBL, TSF_MAJOR_VERSION, TSF_MINOR_VERSION, metadata},
		registry,
	}
}

// IsTableFile checks whether the given data file begins with the expected
// "tracetbl" identifier.
func IsTableFile(data []byte) bool {
	var (
		tracetbl [8]byte
		buffer   = bytes.NewBuffer(data)
	)
	//
	if _, err := buffer.Read(tracetbl[:]); err != nil {
		return false
	}
	// Check whether header identified
	return tracetbl == TRACETBL
}

// MarshalBinary converts the TableFile into a sequence of bytes.
func (p *TableFile) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	// Bytes header
	headerBytes, err := p.Header.MarshalBinary()
	// Error check
	if err != nil {
		return nil, err
	}
	// Encode header
	buffer.Write(headerBytes)
	// Bytes table data
	payload, err := toBytes(p.Registry)
	// Error check
	if err != nil {
		return nil, err
	}
	// Encode table data
	buffer.Write(snappy.Encode(nil, payload))
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this TableFile from a given set of data bytes.
// This should match exactly the encoding above.
func (p *TableFile) UnmarshalBinary(data []byte) error {
	var err error
	//
	buffer := bytes.NewBuffer(data)
	// Read header
	if err = p.Header.UnmarshalBinary(buffer); err == nil && p.Header.IsCompatible() {
		var payload []byte
		// Decompress table data
		if payload, err = snappy.Decode(nil, buffer.Bytes()); err != nil {
			return err
		}
		// Decode table data
		p.Registry, err = fromBytes(payload)
		// Done
		return err
	} else if err == nil {
		err = fmt.Errorf("incompatible binary file was v%d.%d, but expected v%d.%d)",
			p.Header.MajorVersion, p.Header.MinorVersion, TSF_MAJOR_VERSION, TSF_MINOR_VERSION)
	}
	//
	return err
}
