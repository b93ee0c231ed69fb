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

package conversion

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-errors/errors"
)

// Converter represents a conversion function normalizing a native
// row value into its Avro compatible representation
type Converter func(value any) (any, error)

// Override remaps a single field. TypeName replaces the declared
// PostgreSQL type during schema generation, Converter replaces the
// value conversion applied during row generation.
type Override struct {
	TypeName  string
	Converter Converter
}

// Overrides collects per field overrides, keyed by field name
type Overrides map[string]Override

type expressionConverter struct {
	expression string
	prog       *vm.Program
	vm         *vm.VM
}

// NewExpressionConverter compiles the given expression into a
// Converter. The field value is bound as «value» in the
// expression environment.
func NewExpressionConverter(
	expression string,
) (Converter, error) {

	prog, err := expr.Compile(expression)
	if err != nil {
		return nil, errors.Errorf("failed to compile converter expression «%s»: %s", expression, err.Error())
	}

	converter := &expressionConverter{
		expression: expression,
		prog:       prog,
		vm:         &vm.VM{},
	}
	return converter.convert, nil
}

func (c *expressionConverter) convert(
	value any,
) (any, error) {

	env := map[string]any{
		"value": value,
	}

	result, err := c.vm.Run(c.prog, env)
	if err != nil {
		return nil, errors.Errorf("converter expression «%s» failed: %s", c.expression, err.Error())
	}
	return result, nil
}
