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
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Column_Passthrough(
	t *testing.T,
) {

	column := NewColumn("id", "BIGINT", false)

	normalized, err := Normalize(column, nil)
	assert.NoError(t, err)
	assert.Equal(t, "id", normalized.Name())
	assert.Equal(t, "bigint", normalized.TypeName())
	assert.False(t, normalized.IsNullable())

	normalized, err = Normalize(&column, nil)
	assert.NoError(t, err)
	assert.True(t, column.Equal(normalized))
}

func TestNormalize_Map_Definition(
	t *testing.T,
) {

	precision := 10
	scale := 2

	normalized, err := Normalize(map[string]any{
		"name":              "price",
		"type":              "numeric",
		"nullable":          true,
		"numeric_precision": precision,
		"numeric_scale":     scale,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "price", normalized.Name())
	assert.Equal(t, "numeric", normalized.TypeName())
	assert.True(t, normalized.IsNullable())
	assert.Equal(t, &precision, normalized.NumericPrecision())
	assert.Equal(t, &scale, normalized.NumericScale())
}

func TestNormalize_Map_Definition_Minimal(
	t *testing.T,
) {

	normalized, err := Normalize(map[string]string{
		"name": "title",
		"type": "varchar",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "title", normalized.Name())
	assert.Equal(t, "varchar", normalized.TypeName())

	// Nullability defaults to true when unspecified
	assert.True(t, normalized.IsNullable())
	assert.Nil(t, normalized.NumericPrecision())
	assert.Nil(t, normalized.NumericScale())
}

func TestNormalize_Map_Definition_Incompatible(
	t *testing.T,
) {

	_, err := Normalize(map[string]any{
		"name": "title",
	}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assuming pg2avro compatible column interface")
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "type")
}

type columnDefinition struct {
	Name             string
	Type             string
	Nullable         bool
	NumericPrecision *int
	NumericScale     *int
}

func TestNormalize_Struct_Definition(
	t *testing.T,
) {

	precision := 38
	scale := 9

	normalized, err := Normalize(columnDefinition{
		Name:             "amount",
		Type:             "numeric",
		Nullable:         true,
		NumericPrecision: &precision,
		NumericScale:     &scale,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "amount", normalized.Name())
	assert.Equal(t, "numeric", normalized.TypeName())
	assert.True(t, normalized.IsNullable())
	assert.Equal(t, &precision, normalized.NumericPrecision())
	assert.Equal(t, &scale, normalized.NumericScale())
}

type incompatibleDefinition struct {
	Title string
	Kind  string
}

func TestNormalize_Struct_Definition_Incompatible(
	t *testing.T,
) {

	_, err := Normalize(incompatibleDefinition{
		Title: "title",
		Kind:  "varchar",
	}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assuming pg2avro compatible column interface")
}

func TestNormalize_Struct_Definition_With_Mapping(
	t *testing.T,
) {

	normalized, err := Normalize(incompatibleDefinition{
		Title: "title",
		Kind:  "varchar",
	}, &Mapping{
		Name: "title",
		Type: "kind",
	})

	assert.NoError(t, err)
	assert.Equal(t, "title", normalized.Name())
	assert.Equal(t, "varchar", normalized.TypeName())
	assert.True(t, normalized.IsNullable())
}

func TestNormalize_Map_Definition_With_Mapping(
	t *testing.T,
) {

	scale := 4

	normalized, err := Normalize(map[string]any{
		"column_name": "price",
		"column_type": "numeric",
		"is_nullable": false,
		"scale":       scale,
	}, &Mapping{
		Name:         "column_name",
		Type:         "column_type",
		Nullable:     "is_nullable",
		NumericScale: "scale",
	})

	assert.NoError(t, err)
	assert.Equal(t, "price", normalized.Name())
	assert.Equal(t, "numeric", normalized.TypeName())
	assert.False(t, normalized.IsNullable())
	assert.Nil(t, normalized.NumericPrecision())
	assert.Equal(t, &scale, normalized.NumericScale())
}

func TestNormalize_Mapping_Missing_Attribute(
	t *testing.T,
) {

	_, err := Normalize(map[string]any{
		"column_name": "price",
	}, &Mapping{
		Name: "column_name",
		Type: "column_type",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assuming pg2avro compatible column interface")
	assert.Contains(t, err.Error(), "column_type")
}

func TestNormalize_FieldDescription(
	t *testing.T,
) {

	normalized, err := Normalize(pgconn.FieldDescription{
		Name:        "id",
		DataTypeOID: pgtype.Int8OID,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "id", normalized.Name())
	assert.Equal(t, "int8", normalized.TypeName())
	assert.True(t, normalized.IsNullable())
}

func TestNormalize_FieldDescription_Numeric_Modifier(
	t *testing.T,
) {

	// Type modifier layout of numeric(10,2)
	modifier := int32((10<<16|2)+4)

	normalized, err := Normalize(&pgconn.FieldDescription{
		Name:         "price",
		DataTypeOID:  pgtype.NumericOID,
		TypeModifier: modifier,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "numeric", normalized.TypeName())
	assert.Equal(t, 10, *normalized.NumericPrecision())
	assert.Equal(t, 2, *normalized.NumericScale())
}

func TestNormalize_FieldDescription_Unknown_OID(
	t *testing.T,
) {

	normalized, err := Normalize(pgconn.FieldDescription{
		Name:        "custom",
		DataTypeOID: 4294967200,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "text", normalized.TypeName())
}

func TestNormalize_Unsupported_Definition(
	t *testing.T,
) {

	_, err := Normalize(42, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported column definition type")
}
