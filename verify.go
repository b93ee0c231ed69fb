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

package pg2avro

import (
	"github.com/go-errors/errors"
	hambaavro "github.com/hamba/avro/v2"

	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/encoding"
)

// VerifySchema parses the generated record schema with a real Avro
// schema parser and reports any schema that an Avro reader would
// reject
func VerifySchema(
	schema avro.Struct,
) error {

	encoded, err := encoding.NewJsonEncoder(true).Marshal(schema)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	if _, err := hambaavro.Parse(string(encoded)); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}
