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

package columns

import (
	"reflect"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

const (
	attributeName             = "name"
	attributeType             = "type"
	attributeNullable         = "nullable"
	attributeNumericPrecision = "numeric_precision"
	attributeNumericScale     = "numeric_scale"
)

var requiredAttributes = []string{attributeName, attributeType}

var pgTypeMap = pgtype.NewMap()

// Normalize converts a single user supplied column definition into the
// canonical Column representation. Supported definition shapes are
// Column itself, pgconn.FieldDescription (the driver column shape),
// map types with string keys and arbitrary structs. Struct attributes
// and map keys are either expected under their canonical names (name,
// type, nullable, numeric_precision, numeric_scale) or resolved
// through the given Mapping.
func Normalize(
	definition any, mapping *Mapping,
) (Column, error) {

	switch d := definition.(type) {
	case Column:
		return d, nil
	case *Column:
		return *d, nil
	case pgconn.FieldDescription:
		return fromFieldDescription(d), nil
	case *pgconn.FieldDescription:
		return fromFieldDescription(*d), nil
	}

	value := reflect.ValueOf(definition)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return Column{}, errors.Errorf("unsupported column definition type %T", definition)
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Map:
		return fromMap(value, mapping)
	case reflect.Struct:
		return fromStruct(value, mapping)
	}
	return Column{}, errors.Errorf("unsupported column definition type %T", definition)
}

// fromFieldDescription adapts a pgx row description entry. Field
// descriptions carry no nullability information, columns are assumed
// nullable.
func fromFieldDescription(
	fd pgconn.FieldDescription,
) Column {

	typeName := "text"
	if t, ok := pgTypeMap.TypeForOID(fd.DataTypeOID); ok {
		typeName = t.Name
	}

	var numericPrecision, numericScale *int
	if fd.DataTypeOID == pgtype.NumericOID && fd.TypeModifier > -1 {
		// The numeric type modifier packs precision and scale on top
		// of the 4 byte varlena header offset
		modifier := int(fd.TypeModifier) - 4
		precision := (modifier >> 16) & 0xffff
		scale := modifier & 0xffff
		numericPrecision = &precision
		numericScale = &scale
	}

	return NewNumericColumn(fd.Name, typeName, true, numericPrecision, numericScale)
}

func fromMap(
	value reflect.Value, mapping *Mapping,
) (Column, error) {

	if value.Type().Key().Kind() != reflect.String {
		return Column{}, errors.Errorf("unsupported column definition map key type %s", value.Type().Key().String())
	}

	attributes := make(map[string]any, value.Len())
	iterator := value.MapRange()
	for iterator.Next() {
		attributes[iterator.Key().String()] = unwrapValue(iterator.Value())
	}

	if mapping != nil {
		return newMappedColumn(
			func(attribute string) (any, bool) {
				v, present := attributes[attribute]
				return v, present
			}, mapping, lo.Keys(attributes),
		)
	}

	if err := checkRequiredAttributes(lo.Keys(attributes)); err != nil {
		return Column{}, err
	}

	return newCanonicalColumn(
		func(attribute string) (any, bool) {
			v, present := attributes[attribute]
			return v, present
		}, lo.Keys(attributes),
	)
}

func fromStruct(
	value reflect.Value, mapping *Mapping,
) (Column, error) {

	attributeNames := make([]string, 0, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		if field := value.Type().Field(i); field.IsExported() {
			attributeNames = append(attributeNames, field.Name)
		}
	}

	resolver := func(attribute string) (any, bool) {
		return structAttribute(value, attribute)
	}

	if mapping != nil {
		return newMappedColumn(resolver, mapping, attributeNames)
	}

	if err := checkRequiredAttributes(attributeNames); err != nil {
		return Column{}, err
	}
	return newCanonicalColumn(resolver, attributeNames)
}

type attributeResolver func(attribute string) (any, bool)

func newMappedColumn(
	resolver attributeResolver, mapping *Mapping, attributeNames []string,
) (Column, error) {

	name, nameFound := stringAttribute(resolver, mapping.Name)
	typeName, typeFound := stringAttribute(resolver, mapping.Type)
	if !nameFound || !typeFound {
		return Column{}, incompatibleColumnError(attributeNames, []string{mapping.Name, mapping.Type})
	}

	return NewNumericColumn(
		name,
		typeName,
		boolAttribute(resolver, mapping.Nullable, true),
		intAttribute(resolver, mapping.NumericPrecision),
		intAttribute(resolver, mapping.NumericScale),
	), nil
}

func newCanonicalColumn(
	resolver attributeResolver, attributeNames []string,
) (Column, error) {

	name, nameFound := stringAttribute(resolver, attributeName)
	typeName, typeFound := stringAttribute(resolver, attributeType)
	if !nameFound || !typeFound {
		return Column{}, incompatibleColumnError(attributeNames, requiredAttributes)
	}

	return NewNumericColumn(
		name,
		typeName,
		boolAttribute(resolver, attributeNullable, true),
		intAttribute(resolver, attributeNumericPrecision),
		intAttribute(resolver, attributeNumericScale),
	), nil
}

func checkRequiredAttributes(
	attributeNames []string,
) error {

	missing := lo.Filter(requiredAttributes, func(required string, _ int) bool {
		return !lo.ContainsBy(attributeNames, func(attribute string) bool {
			return attributeKeyEqual(attribute, required)
		})
	})

	if len(missing) > 0 {
		return incompatibleColumnError(attributeNames, requiredAttributes)
	}
	return nil
}

func incompatibleColumnError(
	attributeNames, required []string,
) error {

	return errors.Errorf(
		"assuming pg2avro compatible column interface, attributes %v provided, required column attributes: %v",
		attributeNames, required,
	)
}

// attributeKeyEqual matches attribute names case insensitively and
// ignores underscores, so a NumericPrecision struct field satisfies
// the canonical numeric_precision attribute
func attributeKeyEqual(
	this, that string,
) bool {

	normalize := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", "")
	}
	return normalize(this) == normalize(that)
}

func structAttribute(
	value reflect.Value, attribute string,
) (any, bool) {

	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		if attributeKeyEqual(field.Name, attribute) {
			return unwrapValue(value.Field(i)), true
		}
	}
	return nil, false
}

func unwrapValue(
	value reflect.Value,
) any {

	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	return value.Interface()
}

func stringAttribute(
	resolver attributeResolver, attribute string,
) (string, bool) {

	if attribute == "" {
		return "", false
	}
	v, present := resolver(attribute)
	if !present || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return "", false
}

func boolAttribute(
	resolver attributeResolver, attribute string, defaultValue bool,
) bool {

	if attribute == "" {
		return defaultValue
	}
	v, present := resolver(attribute)
	if !present || v == nil {
		return defaultValue
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

func intAttribute(
	resolver attributeResolver, attribute string,
) *int {

	if attribute == "" {
		return nil
	}
	v, present := resolver(attribute)
	if !present || v == nil {
		return nil
	}

	var converted int
	switch n := v.(type) {
	case int:
		converted = n
	case int8:
		converted = int(n)
	case int16:
		converted = int(n)
	case int32:
		converted = int(n)
	case int64:
		converted = int(n)
	case uint:
		converted = int(n)
	case uint8:
		converted = int(n)
	case uint16:
		converted = int(n)
	case uint32:
		converted = int(n)
	case uint64:
		converted = int(n)
	case float32:
		converted = int(n)
	case float64:
		converted = int(n)
	default:
		return nil
	}
	return &converted
}
