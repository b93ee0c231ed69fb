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
	"github.com/kiwicom/pg2avro/internal/functional"
	"github.com/samber/lo"
)

// Builder assembles the type declaration of a single Avro field.
// Build returns either a plain type name, a Struct for annotated
// or complex types, or a union slice for nullable fields.
type Builder interface {
	SchemaType() Type
	LogicalType(
		logicalType LogicalType,
	) Builder
	GetLogicalType() LogicalType
	Nullable() Builder
	Required() Builder
	SetNullable(
		nullable bool,
	) Builder
	IsNullable() bool
	Precision(
		precision int,
	) Builder
	GetPrecision() int
	Scale(
		scale int,
	) Builder
	GetScale() int
	ItemSchema(
		builder Builder,
	) Builder
	GetItemSchema() Builder
	Clone() Builder
	Build() any
}

// RecordBuilder assembles a full Avro record schema from
// individually built field types
type RecordBuilder interface {
	Field(
		name FieldName, index int, schemaBuilder Builder,
	) RecordBuilder
	Fields() map[string]Field
	Build() Struct
}

type Field interface {
	Index() int
	Name() string
	SchemaBuilder() Builder
}

func Boolean() Builder {
	return NewSchemaBuilder(BOOLEAN)
}

func Int() Builder {
	return NewSchemaBuilder(INT)
}

func Long() Builder {
	return NewSchemaBuilder(LONG)
}

func Float() Builder {
	return NewSchemaBuilder(FLOAT)
}

func Double() Builder {
	return NewSchemaBuilder(DOUBLE)
}

func String() Builder {
	return NewSchemaBuilder(STRING)
}

func Bytes() Builder {
	return NewSchemaBuilder(BYTES)
}

func Date() Builder {
	return Int().LogicalType(LogicalDate)
}

func TimestampMillis() Builder {
	return Long().LogicalType(LogicalTimestampMillis)
}

func Decimal(
	precision, scale int,
) Builder {

	return Bytes().
		LogicalType(LogicalDecimal).
		Precision(precision).
		Scale(scale)
}

func Array(
	itemSchema Builder,
) Builder {

	return NewSchemaBuilder(ARRAY).ItemSchema(itemSchema)
}

type fieldImpl struct {
	name          string
	index         int
	schemaBuilder Builder
}

func (f *fieldImpl) Index() int {
	return f.index
}

func (f *fieldImpl) Name() string {
	return f.name
}

func (f *fieldImpl) SchemaBuilder() Builder {
	return f.schemaBuilder
}

type schemaBuilderImpl struct {
	schemaType  Type
	logicalType LogicalType
	nullable    bool
	precision   int
	scale       int
	itemSchema  Builder
}

func NewSchemaBuilder(
	schemaType Type,
) Builder {

	return &schemaBuilderImpl{
		schemaType: schemaType,
		precision:  -1,
		scale:      -1,
	}
}

func (s *schemaBuilderImpl) SchemaType() Type {
	return s.schemaType
}

func (s *schemaBuilderImpl) LogicalType(
	logicalType LogicalType,
) Builder {

	s.logicalType = logicalType
	return s
}

func (s *schemaBuilderImpl) GetLogicalType() LogicalType {
	return s.logicalType
}

func (s *schemaBuilderImpl) Nullable() Builder {
	s.nullable = true
	return s
}

func (s *schemaBuilderImpl) Required() Builder {
	s.nullable = false
	return s
}

func (s *schemaBuilderImpl) SetNullable(
	nullable bool,
) Builder {

	s.nullable = nullable
	return s
}

func (s *schemaBuilderImpl) IsNullable() bool {
	return s.nullable
}

func (s *schemaBuilderImpl) Precision(
	precision int,
) Builder {

	s.precision = precision
	return s
}

func (s *schemaBuilderImpl) GetPrecision() int {
	return s.precision
}

func (s *schemaBuilderImpl) Scale(
	scale int,
) Builder {

	s.scale = scale
	return s
}

func (s *schemaBuilderImpl) GetScale() int {
	return s.scale
}

func (s *schemaBuilderImpl) ItemSchema(
	builder Builder,
) Builder {

	s.itemSchema = builder
	return s
}

func (s *schemaBuilderImpl) GetItemSchema() Builder {
	return s.itemSchema
}

func (s *schemaBuilderImpl) Clone() Builder {
	return &schemaBuilderImpl{
		schemaType:  s.schemaType,
		logicalType: s.logicalType,
		nullable:    s.nullable,
		precision:   s.precision,
		scale:       s.scale,
		itemSchema:  s.itemSchema,
	}
}

func (s *schemaBuilderImpl) Build() any {
	var schemaType any = string(s.schemaType)

	if s.logicalType != "" {
		annotated := Struct{
			FieldNameType:        string(s.schemaType),
			FieldNameLogicalType: string(s.logicalType),
		}
		if s.precision > -1 {
			annotated[FieldNamePrecision] = s.precision
		}
		if s.scale > -1 {
			annotated[FieldNameScale] = s.scale
		}
		schemaType = annotated
	}

	if s.schemaType == ARRAY && s.itemSchema != nil {
		schemaType = Struct{
			FieldNameType:  string(ARRAY),
			FieldNameItems: s.itemSchema.Build(),
		}
	}

	if s.nullable {
		schemaType = []any{string(NULL), schemaType}
	}
	return schemaType
}

type recordBuilderImpl struct {
	name      string
	namespace string
	fields    map[string]Field
}

func NewRecordBuilder(
	name, namespace string,
) RecordBuilder {

	return &recordBuilderImpl{
		name:      name,
		namespace: namespace,
		fields:    make(map[string]Field),
	}
}

func (r *recordBuilderImpl) Field(
	name FieldName, index int, schemaBuilder Builder,
) RecordBuilder {

	r.fields[name] = &fieldImpl{
		name:          name,
		index:         index,
		schemaBuilder: schemaBuilder,
	}
	return r
}

func (r *recordBuilderImpl) Fields() map[string]Field {
	return r.fields
}

func (r *recordBuilderImpl) Build() Struct {
	fields := functional.Sort(lo.Values(r.fields), func(this, other Field) bool {
		return this.Index() < other.Index()
	})

	fieldSchemas := make([]Struct, 0, len(fields))
	for _, field := range fields {
		fieldSchemas = append(fieldSchemas, Struct{
			FieldNameName: field.Name(),
			FieldNameType: field.SchemaBuilder().Build(),
		})
	}

	return Struct{
		FieldNameNamespace: r.namespace,
		FieldNameName:      r.name,
		FieldNameType:      string(RECORD),
		FieldNameFields:    fieldSchemas,
	}
}
