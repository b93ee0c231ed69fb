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
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func TestDate2Int32(
	t *testing.T,
) {

	v, err := date2int32(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, int32(0), v)

	v, err = date2int32(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, int32(1), v)

	v, err = date2int32(time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, int32(18170), v)

	v, err = date2int32(pgtype.Date{
		Time: time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC), Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(18170), v)

	_, err = date2int32("2019-10-01")
	assert.ErrorIs(t, err, errIllegalValue)
}

func TestTimestamp2Int64(
	t *testing.T,
) {

	timestamp := time.Date(2019, 10, 1, 12, 0, 0, 0, time.UTC)

	v, err := timestamp2int64(timestamp)
	assert.NoError(t, err)
	assert.Equal(t, int64(1569931200000), v)

	v, err = timestamp2int64(pgtype.Timestamp{Time: timestamp, Valid: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(1569931200000), v)

	v, err = timestamp2int64(pgtype.Timestamptz{Time: timestamp, Valid: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(1569931200000), v)

	_, err = timestamp2int64(18170)
	assert.ErrorIs(t, err, errIllegalValue)
}

func TestJson2Text(
	t *testing.T,
) {

	v, err := json2text(map[string]any{"b": 1, "a": "x"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":1}`, v.(string))

	_, err = json2text([]any{1, 2})
	assert.ErrorIs(t, err, errIllegalValue)
}

func TestInterval2Text(
	t *testing.T,
) {

	v, err := interval2text(90 * time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, "1h30m0s", v)

	v, err = interval2text(pgtype.Interval{
		Microseconds: 90 * time.Minute.Microseconds(), Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "1h30m0s", v)

	v, err = interval2text(pgtype.Interval{Days: 1, Valid: true})
	assert.NoError(t, err)
	assert.Equal(t, "24h0m0s", v)
}

func TestDateRange2Array(
	t *testing.T,
) {

	v, err := daterange2array(pgtype.Range[pgtype.Date]{
		Lower: pgtype.Date{Time: time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), Valid: true},
		Upper: pgtype.Date{Time: time.Date(1970, 1, 11, 0, 0, 0, 0, time.UTC), Valid: true},
		Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, []any{int32(1), int32(10)}, v)
}

func TestNumRange2Array(
	t *testing.T,
) {

	v, err := numrange2array(pgtype.Range[pgtype.Int4]{
		Lower: pgtype.Int4{Int32: 2, Valid: true},
		Upper: pgtype.Int4{Int32: 7, Valid: true},
		Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, []any{int32(2), int32(7)}, v)

	v, err = numrange2array(pgtype.Range[pgtype.Numeric]{
		Lower: pgtype.Numeric{Int: big.NewInt(15), Exp: -1, Valid: true},
		Upper: pgtype.Numeric{Int: big.NewInt(25), Exp: -1, Valid: true},
		Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, []any{1.5, 2.5}, v)
}

func TestUuid2Text(
	t *testing.T,
) {

	raw := [16]byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}

	v, err := uuid2text(raw)
	assert.NoError(t, err)
	assert.Equal(t, "00010203-0405-0607-0809-0a0b0c0d0e0f", v)

	v, err = uuid2text(pgtype.UUID{Bytes: raw, Valid: true})
	assert.NoError(t, err)
	assert.Equal(t, "00010203-0405-0607-0809-0a0b0c0d0e0f", v)
}

func TestGeometry2Text(
	t *testing.T,
) {

	point := geom.NewPointFlat(geom.XY, []float64{1, 2})

	v, err := geometry2text(point)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, v.(string))
}

func TestNumeric2Decimal(
	t *testing.T,
) {

	// 8.13 at scale 2 is the unscaled integer 813
	v, err := numeric2decimal(pgtype.Numeric{
		Int: big.NewInt(813), Exp: -2, Valid: true,
	}, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x2d}, v)

	// Rescaling from exponent -2 to scale 4 multiplies by 10^2
	v, err = numeric2decimal(pgtype.Numeric{
		Int: big.NewInt(813), Exp: -2, Valid: true,
	}, 4)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(81300).Bytes(), v)

	// Negative values carry their two's complement representation
	v, err = numeric2decimal(pgtype.Numeric{
		Int: big.NewInt(-813), Exp: -2, Valid: true,
	}, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xfc, 0xd3}, v)

	// Downscaling truncates
	v, err = numeric2decimal(pgtype.Numeric{
		Int: big.NewInt(813), Exp: -2, Valid: true,
	}, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x51}, v)

	v, err = numeric2decimal(pgtype.Numeric{
		Int: big.NewInt(0), Exp: 0, Valid: true,
	}, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00}, v)

	_, err = numeric2decimal(pgtype.Numeric{NaN: true, Valid: true}, 2)
	assert.ErrorIs(t, err, errIllegalValue)
}

func TestNumeric2Decimal_Float_Input(
	t *testing.T,
) {

	v, err := numeric2decimal(8.13, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x2d}, v)
}

func TestNumeric2Float64(
	t *testing.T,
) {

	v, err := numeric2float64(pgtype.Numeric{
		Int: big.NewInt(813), Exp: -2, Valid: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 8.13, v)

	v, err = numeric2float64(1.5)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestTwosComplement(
	t *testing.T,
) {

	assert.Equal(t, []byte{0x00}, twosComplement(big.NewInt(0)))
	assert.Equal(t, []byte{0x01}, twosComplement(big.NewInt(1)))
	assert.Equal(t, []byte{0xff}, twosComplement(big.NewInt(-1)))
	assert.Equal(t, []byte{0x00, 0x80}, twosComplement(big.NewInt(128)))
	assert.Equal(t, []byte{0x80}, twosComplement(big.NewInt(-128)))
	assert.Equal(t, []byte{0xff, 0x7f}, twosComplement(big.NewInt(-129)))
}
