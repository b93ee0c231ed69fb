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

package typemapping

import (
	"strings"

	"github.com/go-errors/errors"
	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/columns"
	"github.com/kiwicom/pg2avro/spi/conversion"
)

const (
	// NumericPrecisionDefault is used for numeric columns
	// without an explicit precision
	NumericPrecisionDefault = 38

	// NumericScaleDefault is used for numeric columns without
	// an explicit scale
	NumericScaleDefault = 9

	// NumericRetypeScaleThreshold is the largest scale still
	// representable as a decimal logical type. Numeric columns
	// beyond the threshold are retyped, some consumers (e.g.
	// Google BigQuery) cannot handle high scale decimals.
	NumericRetypeScaleThreshold = 9
)

// ResolveFieldType determines the Avro type of the given normalized
// column, honoring a potential per field override
func ResolveFieldType(
	column columns.Column, overrides conversion.Overrides,
) (avro.Builder, error) {

	typeName := column.TypeName()

	// The user may have specified an override for this column, that
	// takes precedence over the column's declared type
	if override, present := overrides[column.Name()]; present {
		if override.TypeName == "" {
			return nil, errors.Errorf(
				"missing type name in mapping override for column «%s»", column.Name(),
			)
		}
		typeName = strings.ToLower(override.TypeName)
	}

	arrayType := false
	if strings.HasPrefix(typeName, "_") {
		arrayType = true
		typeName = typeName[1:]
	} else if strings.HasSuffix(typeName, "[]") {
		arrayType = true
		typeName = typeName[:len(typeName)-2]
	}

	registration, present := coreTypes[typeName]
	if !present {
		registration = coreTypes[fallbackTypeName]
	}

	builder := avro.NewSchemaBuilder(registration.schemaType)
	if registration.logicalType != "" {
		builder.LogicalType(registration.logicalType)
	}

	if registration.logicalType == avro.LogicalDecimal {
		builder = resolveDecimalBuilder(column)
	}

	if arrayType {
		builder = avro.Array(builder)
	}

	builder.SetNullable(column.IsNullable())
	return builder, nil
}

// resolveDecimalBuilder applies the numeric special cases: explicit
// precision and scale are used when present, defaults otherwise, and
// scales beyond the threshold force a retype to double
func resolveDecimalBuilder(
	column columns.Column,
) avro.Builder {

	precision := NumericPrecisionDefault
	if column.NumericPrecision() != nil {
		precision = *column.NumericPrecision()
	}
	scale := NumericScaleDefault
	if column.NumericScale() != nil {
		scale = *column.NumericScale()
	}

	if scale > NumericRetypeScaleThreshold {
		return avro.Double()
	}
	return avro.Decimal(precision, scale)
}
