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

// Mapping declares which keys or attributes of a user supplied
// column definition carry the canonical column attributes. Name
// and Type are mandatory when a Mapping is used, the remaining
// attributes fall back to their defaults when left empty or when
// the mapped key is absent from the definition.
type Mapping struct {
	Name             string
	Type             string
	Nullable         string
	NumericPrecision string
	NumericScale     string
}
