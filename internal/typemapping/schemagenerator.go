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
	"github.com/kiwicom/pg2avro/internal/supporting/logging"
	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/columns"
	"github.com/kiwicom/pg2avro/spi/conversion"
)

// SchemaGenerator assembles Avro record schemas from user supplied
// column definitions
type SchemaGenerator struct {
	mapping   *columns.Mapping
	overrides conversion.Overrides
	logger    *logging.Logger
}

func NewSchemaGenerator(
	mapping *columns.Mapping, overrides conversion.Overrides,
) (*SchemaGenerator, error) {

	logger, err := logging.NewLogger("SchemaGenerator")
	if err != nil {
		return nil, err
	}

	return &SchemaGenerator{
		mapping:   mapping,
		overrides: overrides,
		logger:    logger,
	}, nil
}

// GenerateSchema normalizes the given column definitions and builds
// the Avro record schema for the table, with fields in definition
// order
func (sg *SchemaGenerator) GenerateSchema(
	tableName, namespace string, columnDefinitions []any,
) (avro.Struct, error) {

	recordBuilder := avro.NewRecordBuilder(tableName, namespace)
	for index, definition := range columnDefinitions {
		column, err := columns.Normalize(definition, sg.mapping)
		if err != nil {
			return nil, err
		}

		fieldType, err := ResolveFieldType(column, sg.overrides)
		if err != nil {
			return nil, err
		}

		recordBuilder.Field(column.Name(), index, fieldType)
	}

	sg.logger.Debugf(
		"generated schema for %s.%s with %d fields", namespace, tableName, len(columnDefinitions),
	)
	return recordBuilder.Build(), nil
}
