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
	"github.com/kiwicom/pg2avro/spi/avro"
)

type typeRegistration struct {
	schemaType  avro.Type
	logicalType avro.LogicalType
}

// fallbackTypeName covers all custom and unidentified types
const fallbackTypeName = "text"

var coreTypes = map[string]typeRegistration{
	"bool": {
		schemaType: avro.BOOLEAN,
	},
	"boolean": {
		schemaType: avro.BOOLEAN,
	},
	"char": {
		schemaType: avro.STRING,
	},
	"character": {
		schemaType: avro.STRING,
	},
	"bpchar": {
		schemaType: avro.STRING,
	},
	// TODO: Avro supports proper enums, make that work.
	"enum": {
		schemaType: avro.STRING,
	},
	"json": {
		schemaType: avro.STRING,
	},
	"jsonb": {
		schemaType: avro.STRING,
	},
	"inet": {
		schemaType: avro.STRING,
	},
	"text": {
		schemaType: avro.STRING,
	},
	"uuid": {
		schemaType: avro.STRING,
	},
	"varchar": {
		schemaType: avro.STRING,
	},
	"character varying": {
		schemaType: avro.STRING,
	},
	"interval": {
		schemaType: avro.STRING,
	},
	"smallint": {
		schemaType: avro.INT,
	},
	"integer": {
		schemaType: avro.INT,
	},
	"int": {
		schemaType: avro.INT,
	},
	"int2": {
		schemaType: avro.INT,
	},
	"int4": {
		schemaType: avro.INT,
	},
	"date": {
		schemaType:  avro.INT,
		logicalType: avro.LogicalDate,
	},
	"time": {
		schemaType:  avro.INT,
		logicalType: avro.LogicalTimestampMillis,
	},
	"bigint": {
		schemaType: avro.LONG,
	},
	"int8": {
		schemaType: avro.LONG,
	},
	"timestamp": {
		schemaType:  avro.LONG,
		logicalType: avro.LogicalTimestampMillis,
	},
	"timestamptz": {
		schemaType:  avro.LONG,
		logicalType: avro.LogicalTimestampMillis,
	},
	"timestamp without time zone": {
		schemaType:  avro.LONG,
		logicalType: avro.LogicalTimestampMillis,
	},
	"timestamp with time zone": {
		schemaType:  avro.LONG,
		logicalType: avro.LogicalTimestampMillis,
	},
	"real": {
		schemaType: avro.FLOAT,
	},
	"float4": {
		schemaType: avro.FLOAT,
	},
	"float8": {
		schemaType: avro.DOUBLE,
	},
	"double precision": {
		schemaType: avro.DOUBLE,
	},
	"double_precision": {
		schemaType: avro.DOUBLE,
	},
	"array": {
		schemaType: avro.ARRAY,
	},
	"daterange": {
		schemaType: avro.ARRAY,
	},
	"int4range": {
		schemaType: avro.ARRAY,
	},
	"int2vector": {
		schemaType: avro.ARRAY,
	},
	"numeric": {
		schemaType:  avro.BYTES,
		logicalType: avro.LogicalDecimal,
	},
}
