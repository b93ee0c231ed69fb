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

package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaBuilder_Primitive_Types(
	t *testing.T,
) {

	assert.Equal(t, "boolean", Boolean().Build())
	assert.Equal(t, "int", Int().Build())
	assert.Equal(t, "long", Long().Build())
	assert.Equal(t, "float", Float().Build())
	assert.Equal(t, "double", Double().Build())
	assert.Equal(t, "string", String().Build())
	assert.Equal(t, "bytes", Bytes().Build())
}

func TestSchemaBuilder_Nullable_Union(
	t *testing.T,
) {

	assert.Equal(t, []any{"null", "string"}, String().Nullable().Build())
	assert.Equal(t, "string", String().Nullable().Required().Build())
	assert.Equal(t, []any{"null", "long"}, Long().SetNullable(true).Build())
}

func TestSchemaBuilder_Logical_Types(
	t *testing.T,
) {

	assert.Equal(t, Struct{
		"type":        "int",
		"logicalType": "date",
	}, Date().Build())

	assert.Equal(t, Struct{
		"type":        "long",
		"logicalType": "timestamp-millis",
	}, TimestampMillis().Build())

	assert.Equal(t, Struct{
		"type":        "bytes",
		"logicalType": "decimal",
		"precision":   10,
		"scale":       2,
	}, Decimal(10, 2).Build())
}

func TestSchemaBuilder_Array_Types(
	t *testing.T,
) {

	assert.Equal(t, Struct{
		"type":  "array",
		"items": "string",
	}, Array(String()).Build())

	assert.Equal(t, []any{"null", Struct{
		"type":  "array",
		"items": "int",
	}}, Array(Int()).Nullable().Build())

	// Item-less arrays degrade to a plain type name
	assert.Equal(t, "array", NewSchemaBuilder(ARRAY).Build())
}

func TestSchemaBuilder_Clone(
	t *testing.T,
) {

	original := Decimal(12, 4).Nullable()
	clone := original.Clone()

	assert.Equal(t, original.Build(), clone.Build())

	clone.Scale(2).Required()
	assert.Equal(t, 4, original.GetScale())
	assert.True(t, original.IsNullable())
}

func TestRecordBuilder_Field_Order(
	t *testing.T,
) {

	schema := NewRecordBuilder("bookings", "dwh").
		Field("id", 2, Long()).
		Field("name", 0, String()).
		Field("active", 1, Boolean().Nullable()).
		Build()

	assert.Equal(t, "dwh", schema[FieldNameNamespace])
	assert.Equal(t, "bookings", schema[FieldNameName])
	assert.Equal(t, "record", schema[FieldNameType])

	fields := schema[FieldNameFields].([]Struct)
	assert.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0][FieldNameName])
	assert.Equal(t, "active", fields[1][FieldNameName])
	assert.Equal(t, "id", fields[2][FieldNameName])
	assert.Equal(t, []any{"null", "boolean"}, fields[1][FieldNameType])
}
