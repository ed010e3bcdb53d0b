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
package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/consensys/go-tracetables/pkg/table"
	"github.com/consensys/go-tracetables/pkg/table/json"
	"github.com/consensys/go-tracetables/pkg/table/tsf"
	"github.com/consensys/go-tracetables/pkg/winscope"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a table file using a parser based on the extension of the filename.
// Observe that JSON files carry row data only, hence they are loaded against
// the built-in winscope declarations.
func readRegistryFile(filename string) *table.Registry {
	data, err := os.ReadFile(filename)
	//
	if err == nil {
		// Check file extension
		ext := path.Ext(filename)
		//
		switch ext {
		case ".json":
			var registry *table.Registry
			//
			if registry, err = winscope.NewRegistry(); err == nil {
				if err = json.FromBytes(registry, data); err == nil {
					return registry
				}
			}
		case ".tsf":
			var file tsf.TableFile
			//
			if err = file.UnmarshalBinary(data); err == nil {
				return file.Registry
			}
		default:
			err = fmt.Errorf("unknown table file format: %s", ext)
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Write out a registry to a given file, using a format determined by the
// extension of the filename.
func writeRegistryFile(registry *table.Registry, filename string) {
	var (
		data []byte
		err  error
	)
	// Check file extension
	ext := path.Ext(filename)
	//
	switch ext {
	case ".json":
		data = []byte(json.ToJsonString(registry))
	case ".tsf":
		file := tsf.NewTableFile(nil, registry)
		data, err = file.MarshalBinary()
	default:
		err = fmt.Errorf("unknown table file format: %s", ext)
	}
	//
	if err == nil {
		err = os.WriteFile(filename, data, 0644)
	}
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
