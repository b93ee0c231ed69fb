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
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/go-errors/errors"
	"github.com/hashicorp/go-uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kiwicom/pg2avro/spi/encoding"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

var (
	microsPerHour = time.Hour.Microseconds()
	microsPerDay  = microsPerHour * 24

	unixEpoch = time.Unix(0, 0)

	avgDaysPerMonth       = 365.25 / 12
	avgMicrosDaysPerMonth = avgDaysPerMonth * float64(microsPerDay)
)

// errIllegalValue represents an illegal type conversion request
// for the given value
var errIllegalValue = fmt.Errorf("illegal value for data type conversion")

var jsonEncoder = encoding.NewJsonEncoder(true)

func date2int32(
	value any,
) (any, error) {

	if v, ok := value.(pgtype.Date); ok {
		value = v.Time
	}
	if v, ok := value.(time.Time); ok {
		return int32(int64(v.Sub(unixEpoch).Hours()) / 24), nil
	}
	return nil, errIllegalValue
}

func timestamp2int64(
	value any,
) (any, error) {

	switch v := value.(type) {
	case time.Time:
		return v.UnixMilli(), nil
	case pgtype.Timestamp:
		return v.Time.UnixMilli(), nil
	case pgtype.Timestamptz:
		return v.Time.UnixMilli(), nil
	}
	return nil, errIllegalValue
}

func json2text(
	value any,
) (any, error) {

	if v, ok := value.(map[string]any); ok {
		d, err := jsonEncoder.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(d), nil
	}
	return nil, errIllegalValue
}

func interval2text(
	value any,
) (any, error) {

	switch v := value.(type) {
	case time.Duration:
		return v.String(), nil
	case pgtype.Interval:
		micros := v.Microseconds +
			(int64(v.Days) * microsPerDay) +
			int64(math.Round(float64(v.Months)*avgMicrosDaysPerMonth))
		return (time.Duration(micros) * time.Microsecond).String(), nil
	}
	return nil, errIllegalValue
}

func daterange2array(
	value any,
) (any, error) {

	if v, ok := value.(pgtype.Range[pgtype.Date]); ok {
		lower, err := date2int32(v.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := date2int32(v.Upper)
		if err != nil {
			return nil, err
		}
		return []any{lower, upper}, nil
	}
	return nil, errIllegalValue
}

func numrange2array(
	value any,
) (any, error) {

	rangeBound := func(bound any) (any, error) {
		switch b := bound.(type) {
		case pgtype.Numeric:
			f, err := b.Float64Value()
			if err != nil {
				return nil, err
			}
			return f.Float64, nil
		case pgtype.Int4:
			return b.Int32, nil
		case pgtype.Int8:
			return b.Int64, nil
		case int, int32, int64, float32, float64:
			return b, nil
		}
		return nil, errors.Errorf("not a numeric range bound: %+v", bound)
	}

	switch v := value.(type) {
	case pgtype.Range[pgtype.Numeric]:
		return rangeBounds2array(v.Lower, v.Upper, rangeBound)
	case pgtype.Range[pgtype.Int4]:
		return rangeBounds2array(v.Lower, v.Upper, rangeBound)
	case pgtype.Range[any]:
		return rangeBounds2array(v.Lower, v.Upper, rangeBound)
	}
	return nil, errIllegalValue
}

func rangeBounds2array[T any](
	lower, upper T, transformer func(bound any) (any, error),
) (any, error) {

	l, err := transformer(lower)
	if err != nil {
		return nil, err
	}
	u, err := transformer(upper)
	if err != nil {
		return nil, err
	}
	return []any{l, u}, nil
}

func uuid2text(
	value any,
) (any, error) {

	if v, ok := value.(pgtype.UUID); ok {
		u, err := uuid.FormatUUID(v.Bytes[:])
		if err != nil {
			return nil, err
		}
		return u, nil
	} else if v, ok := value.([16]byte); ok {
		u, err := uuid.FormatUUID(v[:])
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, errIllegalValue
}

func geometry2text(
	value any,
) (any, error) {

	if v, ok := value.(geom.T); ok {
		d, err := geojson.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(d), nil
	}
	return nil, errIllegalValue
}

// numeric2decimal converts a numeric value into the two's complement
// representation of the unscaled decimal value at the given scale,
// as required by the Avro decimal logical type
func numeric2decimal(
	value any, scale int,
) (any, error) {

	var unscaled *big.Int
	var exp int

	switch v := value.(type) {
	case pgtype.Numeric:
		if !v.Valid || v.NaN || v.InfinityModifier != pgtype.Finite {
			return nil, errIllegalValue
		}
		unscaled = new(big.Int).Set(v.Int)
		exp = int(v.Exp)
	case int:
		unscaled = big.NewInt(int64(v))
	case int64:
		unscaled = big.NewInt(v)
	case float64:
		scaled := new(big.Float).Mul(big.NewFloat(v), pow10Float(scale))
		unscaled, _ = scaled.Int(nil)
		return twosComplement(unscaled), nil
	default:
		return nil, errIllegalValue
	}

	rescale := exp + scale
	if rescale >= 0 {
		unscaled.Mul(unscaled, pow10Int(rescale))
	} else {
		unscaled.Quo(unscaled, pow10Int(-rescale))
	}
	return twosComplement(unscaled), nil
}

func numeric2float64(
	value any,
) (any, error) {

	switch v := value.(type) {
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil {
			return nil, err
		}
		return f.Float64, nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	}
	return nil, errIllegalValue
}

func pow10Int(
	exp int,
) *big.Int {

	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

func pow10Float(
	exp int,
) *big.Float {

	return new(big.Float).SetInt(pow10Int(exp))
}

func twosComplement(
	v *big.Int,
) []byte {

	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 {
			return []byte{0}
		}
		// Keep the sign bit clear for non-negative values
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	length := len(new(big.Int).Neg(v).Bytes())
	if length == 0 {
		length = 1
	}
	for {
		complemented := new(big.Int).Add(
			new(big.Int).Lsh(big.NewInt(1), uint(8*length)), v,
		)
		b := complemented.Bytes()
		if len(b) == length && b[0]&0x80 != 0 {
			return b
		}
		length++
	}
}
