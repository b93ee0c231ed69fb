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
	"strings"

	"github.com/go-errors/errors"
	"github.com/kiwicom/pg2avro/spi/avro"
)

// rowAttribute resolves the value of a single field from a row.
// Rows are either maps keyed by field name, positional slices with
// the index taken from the field position in the schema, or
// arbitrary structs resolved by attribute name.
func rowAttribute(
	row any, name string, fields []avro.Struct,
) (any, error) {

	if r, ok := row.(map[string]any); ok {
		return r[name], nil
	}

	value := reflect.ValueOf(row)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, errors.Errorf("unsupported row type %T", row)
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, errors.Errorf("unsupported row map key type %s", value.Type().Key().String())
		}
		key := reflect.ValueOf(name).Convert(value.Type().Key())
		item := value.MapIndex(key)
		if !item.IsValid() {
			return nil, nil
		}
		return unwrapRowValue(item), nil

	case reflect.Slice, reflect.Array:
		index := fieldIndex(name, fields)
		if index < 0 || index >= value.Len() {
			return nil, errors.Errorf("row has no value for field «%s» at index %d", name, index)
		}
		return unwrapRowValue(value.Index(index)), nil

	case reflect.Struct:
		structType := value.Type()
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if field.IsExported() && strings.EqualFold(field.Name, name) {
				return unwrapRowValue(value.Field(i)), nil
			}
		}
		return nil, errors.Errorf("row object of type %T has no attribute «%s»", row, name)
	}

	return nil, errors.Errorf("unsupported row type %T", row)
}

func fieldIndex(
	name string, fields []avro.Struct,
) int {

	for index, field := range fields {
		if field[avro.FieldNameName] == name {
			return index
		}
	}
	return -1
}

func unwrapRowValue(
	value reflect.Value,
) any {

	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	return value.Interface()
}
