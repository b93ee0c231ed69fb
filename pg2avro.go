/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements. See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package pg2avro generates Avro record schemas from PostgreSQL
// column metadata and converts native rows into Avro compatible
// row dictionaries.
//
// Column definitions are accepted in three shapes: maps keyed by
// attribute name, arbitrary structs resolved by reflection (either
// canonically named or remapped through a ColumnMapping), and pgx
// field descriptions. Rows are accepted as maps, positional slices
// or arbitrary structs.
package pg2avro

import (
	"github.com/kiwicom/pg2avro/internal/typemapping"
	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/columns"
	"github.com/kiwicom/pg2avro/spi/conversion"
)

// ColumnMapping remaps the attribute or key names of user supplied
// column definitions onto the canonical column attributes
type ColumnMapping = columns.Mapping

// MappingOverride remaps the declared type and the value conversion
// of a single field
type MappingOverride = conversion.Override

// Overrides collects per field overrides, keyed by field name
type Overrides = conversion.Overrides

// GetAvroSchema generates the Avro record schema for the given
// table and columns. Column definitions are expected in one of the
// canonical shapes, see Normalize in spi/columns.
func GetAvroSchema(
	tableName, namespace string, columnDefinitions []any,
) (avro.Struct, error) {

	return GetAvroSchemaWithOptions(tableName, namespace, columnDefinitions, nil, nil)
}

// GetAvroSchemaWithOptions generates the Avro record schema for the
// given table and columns, resolving column attributes through the
// given mapping and applying per field type overrides
func GetAvroSchemaWithOptions(
	tableName, namespace string, columnDefinitions []any,
	mapping *ColumnMapping, overrides Overrides,
) (avro.Struct, error) {

	generator, err := typemapping.NewSchemaGenerator(mapping, overrides)
	if err != nil {
		return nil, err
	}
	return generator.GenerateSchema(tableName, namespace, columnDefinitions)
}

// GetAvroRowDict converts a native row into an Avro compatible row
// dictionary following the given record schema
func GetAvroRowDict(
	row any, schema avro.Struct,
) (map[string]any, error) {

	return GetAvroRowDictWithOptions(row, schema, nil)
}

// GetAvroRowDictWithOptions converts a native row into an Avro
// compatible row dictionary, applying per field value converter
// overrides
func GetAvroRowDictWithOptions(
	row any, schema avro.Struct, overrides Overrides,
) (map[string]any, error) {

	generator, err := typemapping.NewRowGenerator(overrides)
	if err != nil {
		return nil, err
	}
	return generator.GenerateRow(row, schema)
}
