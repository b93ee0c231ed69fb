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

// Type is a string like definition of the available
// Avro schema data types
type Type string

func (t Type) IsPrimitive() bool {
	switch t {
	case NULL, BOOLEAN, INT, LONG, FLOAT, DOUBLE, BYTES, STRING:
		return true
	}
	return false
}

const (
	NULL    Type = "null"
	BOOLEAN Type = "boolean"
	INT     Type = "int"
	LONG    Type = "long"
	FLOAT   Type = "float"
	DOUBLE  Type = "double"
	BYTES   Type = "bytes"
	STRING  Type = "string"
	ARRAY   Type = "array"
	MAP     Type = "map"
	RECORD  Type = "record"
)

// LogicalType annotates an underlying Avro primitive type
// with additional value semantics
type LogicalType string

const (
	LogicalDate            LogicalType = "date"
	LogicalDecimal         LogicalType = "decimal"
	LogicalTimestampMillis LogicalType = "timestamp-millis"
)

type FieldName = string

const (
	FieldNameName        FieldName = "name"
	FieldNameNamespace   FieldName = "namespace"
	FieldNameType        FieldName = "type"
	FieldNameFields      FieldName = "fields"
	FieldNameItems       FieldName = "items"
	FieldNameValues      FieldName = "values"
	FieldNameLogicalType FieldName = "logicalType"
	FieldNamePrecision   FieldName = "precision"
	FieldNameScale       FieldName = "scale"
	FieldNameDefault     FieldName = "default"
	FieldNameDoc         FieldName = "doc"
)

type Struct = map[FieldName]any
