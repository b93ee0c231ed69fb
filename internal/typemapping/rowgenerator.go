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
	"reflect"
	"time"

	"github.com/go-errors/errors"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kiwicom/pg2avro/internal/supporting/logging"
	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/conversion"
	"github.com/twpayne/go-geom"
)

// RowGenerator converts native rows into Avro compatible row
// dictionaries following a previously generated record schema
type RowGenerator struct {
	overrides conversion.Overrides
	logger    *logging.Logger
}

func NewRowGenerator(
	overrides conversion.Overrides,
) (*RowGenerator, error) {

	logger, err := logging.NewLogger("RowGenerator")
	if err != nil {
		return nil, err
	}

	return &RowGenerator{
		overrides: overrides,
		logger:    logger,
	}, nil
}

// GenerateRow resolves every schema field from the given row and
// normalizes the values into their Avro compatible representations
func (rg *RowGenerator) GenerateRow(
	row any, schema avro.Struct,
) (map[string]any, error) {

	fields, err := schemaFields(schema)
	if err != nil {
		return nil, err
	}

	avroRow := make(map[string]any, len(fields))
	for _, field := range fields {
		name, ok := field[avro.FieldNameName].(string)
		if !ok {
			return nil, errors.Errorf("schema field without a name: %+v", field)
		}

		value, err := rowAttribute(row, name, fields)
		if err != nil {
			return nil, err
		}

		if override, present := rg.overrides[name]; present && value != nil {
			if override.Converter == nil {
				return nil, errors.Errorf(
					"missing converter in mapping override for column «%s»", name,
				)
			}
			converted, err := override.Converter(value)
			if err != nil {
				return nil, err
			}
			value = converted
		}

		coerced, err := coerceValue(value, parseFieldType(field[avro.FieldNameType]))
		if err != nil {
			return nil, errors.Errorf(
				"failed to convert value of field «%s»: %s", name, err.Error(),
			)
		}
		avroRow[name] = coerced
	}

	rg.logger.Tracef("generated row with %d fields", len(avroRow))
	return avroRow, nil
}

func schemaFields(
	schema avro.Struct,
) ([]avro.Struct, error) {

	switch fields := schema[avro.FieldNameFields].(type) {
	case []avro.Struct:
		return fields, nil
	case []any:
		converted := make([]avro.Struct, 0, len(fields))
		for _, field := range fields {
			if f, ok := field.(avro.Struct); ok {
				converted = append(converted, f)
				continue
			}
			return nil, errors.Errorf("unsupported schema field definition: %+v", field)
		}
		return converted, nil
	}
	return nil, errors.Errorf("schema carries no field definitions")
}

// fieldTypeInfo is the decomposed type declaration of a single
// schema field, used to steer value coercion
type fieldTypeInfo struct {
	nullable    bool
	schemaType  avro.Type
	logicalType avro.LogicalType
	scale       int
	items       *fieldTypeInfo
}

func parseFieldType(
	fieldType any,
) fieldTypeInfo {

	info := fieldTypeInfo{
		scale: NumericScaleDefault,
	}

	if union, ok := fieldType.([]any); ok {
		info.nullable = true
		for _, member := range union {
			if member != string(avro.NULL) {
				fieldType = member
				break
			}
		}
	}

	switch t := fieldType.(type) {
	case string:
		info.schemaType = avro.Type(t)
	case avro.Struct:
		if s, ok := t[avro.FieldNameType].(string); ok {
			info.schemaType = avro.Type(s)
		}
		if s, ok := t[avro.FieldNameLogicalType].(string); ok {
			info.logicalType = avro.LogicalType(s)
		}
		switch s := t[avro.FieldNameScale].(type) {
		case int:
			info.scale = s
		case float64:
			// Round tripped through JSON
			info.scale = int(s)
		}
		if items, present := t[avro.FieldNameItems]; present {
			itemInfo := parseFieldType(items)
			info.items = &itemInfo
		}
	}
	return info
}

func coerceValue(
	value any, info fieldTypeInfo,
) (any, error) {

	if value == nil {
		// Non nullable array fields render missing values as empty
		// arrays instead of null
		if info.schemaType == avro.ARRAY && !info.nullable {
			return []any{}, nil
		}
		return nil, nil
	}

	switch v := value.(type) {
	case time.Time:
		if info.logicalType == avro.LogicalDate {
			return date2int32(v)
		}
		return timestamp2int64(v)
	case pgtype.Date:
		return date2int32(v)
	case pgtype.Timestamp:
		return timestamp2int64(v)
	case pgtype.Timestamptz:
		return timestamp2int64(v)
	case time.Duration:
		return interval2text(v)
	case pgtype.Interval:
		return interval2text(v)
	case pgtype.Range[pgtype.Date]:
		return daterange2array(v)
	case pgtype.Range[pgtype.Numeric], pgtype.Range[pgtype.Int4], pgtype.Range[any]:
		return numrange2array(v)
	case map[string]any:
		return json2text(v)
	case pgtype.UUID:
		return uuid2text(v)
	case [16]byte:
		return uuid2text(v)
	case pgtype.Numeric:
		if info.schemaType == avro.DOUBLE {
			return numeric2float64(v)
		}
		return numeric2decimal(v, info.scale)
	case []byte:
		return v, nil
	case geom.T:
		return geometry2text(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		itemInfo := fieldTypeInfo{scale: NumericScaleDefault}
		if info.items != nil {
			itemInfo = *info.items
		}

		// Null elements are dropped, Avro arrays of nullable item
		// types aren't generated
		items := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item := unwrapRowValue(rv.Index(i))
			if item == nil {
				continue
			}
			coerced, err := coerceValue(item, itemInfo)
			if err != nil {
				return nil, err
			}
			items = append(items, coerced)
		}
		return items, nil
	}

	return value, nil
}
