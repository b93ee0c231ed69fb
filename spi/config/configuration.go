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

package config

type Config struct {
	Table   TableConfig  `toml:"table"`
	Logging LoggerConfig `toml:"logging"`
}

type TableConfig struct {
	Name      string                    `toml:"name"`
	Namespace string                    `toml:"namespace"`
	Columns   []ColumnConfig            `toml:"columns"`
	Overrides map[string]OverrideConfig `toml:"overrides"`
}

type ColumnConfig struct {
	Name             string `toml:"name"`
	Type             string `toml:"type"`
	Nullable         *bool  `toml:"nullable"`
	NumericPrecision *int   `toml:"numericprecision"`
	NumericScale     *int   `toml:"numericscale"`
}

// OverrideConfig remaps a single field. Type replaces the declared
// column type, Expression is compiled into a value converter with
// the row value bound as «value»
type OverrideConfig struct {
	Type       string `toml:"type"`
	Expression string `toml:"expression"`
}

type LoggerConfig struct {
	Level   string                     `toml:"level"`
	Outputs LoggerOutputConfig         `toml:"outputs"`
	Loggers map[string]SubLoggerConfig `toml:"loggers"`
}

type SubLoggerConfig struct {
	Level *string `toml:"level"`
}

type LoggerOutputConfig struct {
	Console LoggerConsoleConfig `toml:"console"`
	File    LoggerFileConfig    `toml:"file"`
}

type LoggerConsoleConfig struct {
	Enabled *bool `toml:"enabled"`
}

type LoggerFileConfig struct {
	Enabled  *bool   `toml:"enabled"`
	Path     string  `toml:"path"`
	Rotate   *bool   `toml:"rotate"`
	MaxSize  *string `toml:"maxsize"`
	Compress bool    `toml:"compress"`
}
