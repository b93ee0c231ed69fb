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
	"fmt"
	"strings"

	"github.com/kiwicom/pg2avro/internal/functional"
	"github.com/samber/lo"
)

// Columns represents the collection of columns of a single relation
type Columns []Column

// Names returns the column names in declaration order
func (c Columns) Names() []string {
	return lo.Map(c, func(item Column, _ int) string {
		return item.Name()
	})
}

// Column represents normalized column metadata, independent of the
// shape it was originally supplied in
type Column struct {
	name             string
	typeName         string
	nullable         bool
	numericPrecision *int
	numericScale     *int
}

// NewColumn instantiates a new Column instance without numeric
// constraints. This method is a shorthand version of NewNumericColumn
func NewColumn(
	name, typeName string, nullable bool,
) Column {

	return NewNumericColumn(name, typeName, nullable, nil, nil)
}

// NewNumericColumn instantiates a new Column instance
func NewNumericColumn(
	name, typeName string, nullable bool, numericPrecision, numericScale *int,
) Column {

	return Column{
		name:             name,
		typeName:         strings.ToLower(typeName),
		nullable:         nullable,
		numericPrecision: numericPrecision,
		numericScale:     numericScale,
	}
}

// Name returns the column name
func (c Column) Name() string {
	return c.name
}

// TypeName returns the PostgreSQL data type name of the column,
// always lowercase
func (c Column) TypeName() string {
	return c.typeName
}

// IsNullable returns true if the column is nullable
func (c Column) IsNullable() bool {
	return c.nullable
}

// NumericPrecision returns the precision of a numeric column,
// otherwise nil if no precision is defined
func (c Column) NumericPrecision() *int {
	return c.numericPrecision
}

// NumericScale returns the scale of a numeric column, otherwise
// nil if no scale is defined
func (c Column) NumericScale() *int {
	return c.numericScale
}

func (c Column) String() string {
	builder := strings.Builder{}
	builder.WriteString("{")
	builder.WriteString(fmt.Sprintf("name:%s ", c.name))
	builder.WriteString(fmt.Sprintf("type:%s ", c.typeName))
	builder.WriteString(fmt.Sprintf("nullable:%t ", c.nullable))
	if c.numericPrecision == nil {
		builder.WriteString("numericPrecision:<nil> ")
	} else {
		builder.WriteString(fmt.Sprintf("numericPrecision:%d ", *c.numericPrecision))
	}
	if c.numericScale == nil {
		builder.WriteString("numericScale:<nil>")
	} else {
		builder.WriteString(fmt.Sprintf("numericScale:%d", *c.numericScale))
	}
	builder.WriteString("}")
	return builder.String()
}

func (c Column) Equal(
	other Column,
) bool {

	return c.name == other.name &&
		c.typeName == other.typeName &&
		c.nullable == other.nullable &&
		functional.EqualPtr(c.numericPrecision, other.numericPrecision) &&
		functional.EqualPtr(c.numericScale, other.numericScale)
}
