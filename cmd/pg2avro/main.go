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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/kiwicom/pg2avro"
	"github.com/kiwicom/pg2avro/internal/supporting"
	"github.com/kiwicom/pg2avro/internal/supporting/logging"
	"github.com/kiwicom/pg2avro/internal/version"
	"github.com/kiwicom/pg2avro/spi/avro"
	"github.com/kiwicom/pg2avro/spi/columns"
	spiconfig "github.com/kiwicom/pg2avro/spi/config"
	"github.com/kiwicom/pg2avro/spi/conversion"
	"github.com/kiwicom/pg2avro/spi/encoding"
)

var (
	configurationFile string
	schemaFile        string
	outputFile        string
	verbose           bool
	withCaller        bool
	logToStdErr       bool
	versionOnly       bool
	skipVerify        bool
)

func main() {
	app := &cli.App{
		Name:  version.BinName,
		Usage: "Generates Avro schemas from PostgreSQL column metadata and converts rows into Avro compatible dictionaries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config,c",
				Value:       "",
				Usage:       "Load table definition and logging configuration from `FILE`",
				Destination: &configurationFile,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "Show verbose output",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "caller",
				Usage:       "Collect caller information for log messages",
				Destination: &withCaller,
			},
			&cli.BoolFlag{
				Name:        "log-to-stderr",
				Usage:       "Redirects logging output to stderr, necessary when writing schemas or rows to StdOut",
				Destination: &logToStdErr,
			},
			&cli.BoolFlag{
				Name:        "version",
				Usage:       "Prints the version and exits",
				Destination: &versionOnly,
			},
		},
		Commands: []cli.Command{
			{
				Name:  "schema",
				Usage: "Generates the Avro record schema for the configured table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "out,o",
						Usage:       "Write the generated schema to `FILE` instead of StdOut",
						Destination: &outputFile,
					},
					&cli.BoolFlag{
						Name:        "skip-verify",
						Usage:       "Skip parsing the generated schema with the Avro schema parser",
						Destination: &skipVerify,
					},
				},
				Action: generateSchema,
			},
			{
				Name:  "rows",
				Usage: "Converts JSON rows from StdIn into Avro compatible dictionaries, one per line",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "schema,s",
						Usage:       "Load the Avro record schema from `FILE` instead of generating it",
						Destination: &schemaFile,
					},
					&cli.StringFlag{
						Name:        "out,o",
						Usage:       "Write the converted rows to `FILE` instead of StdOut",
						Destination: &outputFile,
					},
				},
				Action: convertRows,
			},
		},
		Action: func(*cli.Context) error {
			fmt.Printf("%s version %s (git revision %s; branch %s)\n",
				version.BinName, version.Version, version.CommitHash, version.Branch,
			)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func initialize() (*spiconfig.Config, error) {
	if versionOnly {
		fmt.Printf("%s version %s (git revision %s; branch %s)\n",
			version.BinName, version.Version, version.CommitHash, version.Branch,
		)
		os.Exit(0)
	}

	logging.WithCaller = withCaller
	logging.WithVerbose = verbose

	config := &spiconfig.Config{}

	// No configuration file set? Try env variable!
	if configurationFile == "" {
		if cf, present := os.LookupEnv("PG2AVRO_CONFIG"); present {
			fmt.Fprintf(os.Stderr, "Using configuration file from environment variable\n")
			configurationFile = cf
		}
	}

	if configurationFile != "" {
		fmt.Fprintf(os.Stderr, "Loading configuration file: %s\n", configurationFile)
		b, err := os.ReadFile(configurationFile)
		if err != nil {
			return nil, cli.NewExitError(fmt.Sprintf("Configuration file couldn't be read: %v\n", err), 3)
		}

		tomlConfig := filepath.Ext(strings.ToLower(configurationFile)) == ".toml"
		if err := spiconfig.Unmarshall(b, config, tomlConfig); err != nil {
			return nil, cli.NewExitError(fmt.Sprintf("Configuration file couldn't be decoded: %v\n", err), 4)
		}
	}

	if err := logging.InitializeLogging(config, logToStdErr); err != nil {
		return nil, err
	}

	return config, nil
}

func generateSchema(*cli.Context) error {
	config, err := initialize()
	if err != nil {
		return err
	}

	schema, err := schemaFromConfig(config)
	if err != nil {
		return supporting.AdaptError(err, 6)
	}

	if !skipVerify {
		if err := pg2avro.VerifySchema(schema); err != nil {
			return supporting.AdaptErrorWithMessage(err, "generated schema rejected by Avro parser", 7)
		}
	}

	encoded, err := encoding.NewJsonEncoder(true).Marshal(schema)
	if err != nil {
		return supporting.AdaptError(err, 8)
	}

	return writeOutput(append(encoded, '\n'))
}

func convertRows(*cli.Context) error {
	config, err := initialize()
	if err != nil {
		return err
	}

	schema, err := loadOrGenerateSchema(config)
	if err != nil {
		return supporting.AdaptError(err, 6)
	}

	overrides, err := overridesFromConfig(config)
	if err != nil {
		return supporting.AdaptError(err, 6)
	}

	// Type only overrides retype the schema but leave row values alone
	rowOverrides := conversion.Overrides{}
	for fieldName, override := range overrides {
		if override.Converter != nil {
			rowOverrides[fieldName] = override
		}
	}

	out, closer, err := openOutput()
	if err != nil {
		return supporting.AdaptError(err, 8)
	}
	defer closer()

	encoder := encoding.NewJsonEncoder(true)
	decoder := encoding.NewJsonDecoder(true)
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row := map[string]any{}
		if err := decoder.Unmarshal([]byte(line), &row); err != nil {
			return supporting.AdaptErrorWithMessage(err, "row couldn't be decoded", 9)
		}

		rowDict, err := pg2avro.GetAvroRowDictWithOptions(row, schema, rowOverrides)
		if err != nil {
			return supporting.AdaptError(err, 9)
		}

		encoded, err := encoder.Marshal(rowDict)
		if err != nil {
			return supporting.AdaptError(err, 9)
		}

		if _, err := writer.Write(append(encoded, '\n')); err != nil {
			return supporting.AdaptError(err, 8)
		}
	}
	return supporting.AdaptError(scanner.Err(), 9)
}

func schemaFromConfig(config *spiconfig.Config) (avro.Struct, error) {
	if config.Table.Name == "" {
		return nil, cli.NewExitError("Table name required in configuration", 5)
	}
	if len(config.Table.Columns) == 0 {
		return nil, cli.NewExitError("At least one column required in configuration", 5)
	}

	columnDefinitions := make([]any, 0, len(config.Table.Columns))
	for _, columnConfig := range config.Table.Columns {
		nullable := false
		if columnConfig.Nullable != nil {
			nullable = *columnConfig.Nullable
		}
		columnDefinitions = append(columnDefinitions, columns.NewNumericColumn(
			columnConfig.Name, columnConfig.Type, nullable,
			columnConfig.NumericPrecision, columnConfig.NumericScale,
		))
	}

	overrides, err := overridesFromConfig(config)
	if err != nil {
		return nil, err
	}

	return pg2avro.GetAvroSchemaWithOptions(
		config.Table.Name, config.Table.Namespace, columnDefinitions, nil, overrides,
	)
}

func loadOrGenerateSchema(config *spiconfig.Config) (avro.Struct, error) {
	if schemaFile == "" {
		return schemaFromConfig(config)
	}

	b, err := os.ReadFile(schemaFile)
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("Schema file couldn't be read: %v\n", err), 3)
	}

	schema := avro.Struct{}
	if err := encoding.NewJsonDecoder(true).Unmarshal(b, &schema); err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("Schema file couldn't be decoded: %v\n", err), 4)
	}
	return schema, nil
}

func overridesFromConfig(config *spiconfig.Config) (conversion.Overrides, error) {
	if len(config.Table.Overrides) == 0 {
		return nil, nil
	}

	overrides := conversion.Overrides{}
	for fieldName, overrideConfig := range config.Table.Overrides {
		override := conversion.Override{
			TypeName: overrideConfig.Type,
		}
		if overrideConfig.Expression != "" {
			converter, err := conversion.NewExpressionConverter(overrideConfig.Expression)
			if err != nil {
				return nil, err
			}
			override.Converter = converter
		}
		overrides[fieldName] = override
	}
	return overrides, nil
}

func openOutput() (io.Writer, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func writeOutput(content []byte) error {
	out, closer, err := openOutput()
	if err != nil {
		return supporting.AdaptError(err, 8)
	}
	defer closer()

	if _, err := out.Write(content); err != nil {
		return supporting.AdaptError(err, 8)
	}
	return nil
}
