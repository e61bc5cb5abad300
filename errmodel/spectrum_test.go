// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package errmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-wifi-per/wifiphy"
)

func TestLookupCoefficients(t *testing.T) {
	cases := []struct {
		m        uint16
		rate     wifiphy.CodeRate
		expected Coefficients
	}{
		{2, wifiphy.CodeRate1_2, singleTerm(10, 11)},
		{2, wifiphy.CodeRate2_3, singleTerm(5, 8)},
		{2, wifiphy.CodeRate3_4, singleTerm(5, 8)},
		{2, wifiphy.CodeRate5_6, singleTerm(5, 8)},
		{4, wifiphy.CodeRate1_2, twoTerm(10, 11, 0)},
		{4, wifiphy.CodeRate3_4, twoTerm(5, 8, 31)},
		{16, wifiphy.CodeRate1_2, twoTerm(10, 11, 0)},
		{16, wifiphy.CodeRate3_4, twoTerm(5, 8, 31)},
		{64, wifiphy.CodeRate1_2, twoTerm(5, 8, 31)},
		{64, wifiphy.CodeRate2_3, twoTerm(6, 1, 16)},
		{64, wifiphy.CodeRate3_4, twoTerm(5, 8, 31)},
		{64, wifiphy.CodeRate5_6, twoTerm(4, 14, 69)},
		{256, wifiphy.CodeRate3_4, twoTerm(5, 8, 31)},
		{256, wifiphy.CodeRate5_6, twoTerm(4, 14, 69)},
		{1024, wifiphy.CodeRate3_4, twoTerm(5, 8, 31)},
		{1024, wifiphy.CodeRate5_6, twoTerm(4, 14, 69)},
		{4096, wifiphy.CodeRate2_3, twoTerm(5, 8, 31)},
		{4096, wifiphy.CodeRate5_6, twoTerm(4, 14, 69)},
	}
	for _, c := range cases {
		coeffs, err := LookupCoefficients(c.m, c.rate)
		assert.Nil(t, err)
		assert.Equal(t, c.expected, coeffs, "M=%d rate=%v", c.m, c.rate)
	}
}

func TestLookupCoefficientsInvalid(t *testing.T) {
	for _, m := range []uint16{0, 1, 3, 8, 32, 128, 8192} {
		_, err := LookupCoefficients(m, wifiphy.CodeRate1_2)
		assert.ErrorIs(t, err, ErrInvalidInput, "M=%d", m)
	}
	for _, m := range []uint16{2, 4, 16, 64, 256, 1024, 4096} {
		_, err := LookupCoefficients(m, wifiphy.CodeRateUndefined)
		assert.ErrorIs(t, err, ErrInvalidInput, "M=%d", m)
	}
}

func TestDistanceSpectrumTable(t *testing.T) {
	rows := DistanceSpectrumTable()
	assert.Len(t, rows, 15)

	assert.Equal(t, DistanceSpectrumRow{ConstellationSize: 2, CodeRate: wifiphy.CodeRate1_2,
		Coefficients: singleTerm(10, 11)}, rows[0])
	assert.Equal(t, DistanceSpectrumRow{ConstellationSize: 2, OtherRates: true,
		Coefficients: singleTerm(5, 8)}, rows[1])
	assert.Equal(t, DistanceSpectrumRow{ConstellationSize: 4096, OtherRates: true,
		Coefficients: twoTerm(5, 8, 31)}, rows[14])

	// every row agrees with the lookup
	for _, row := range rows {
		rate := row.CodeRate
		if row.OtherRates {
			rate = wifiphy.CodeRate3_4
		}
		coeffs, err := LookupCoefficients(row.ConstellationSize, rate)
		assert.Nil(t, err)
		assert.Equal(t, row.Coefficients, coeffs)
	}

	// the table is a copy
	rows[0].DFree = 99
	coeffs, _ := LookupCoefficients(2, wifiphy.CodeRate1_2)
	assert.Equal(t, uint32(10), coeffs.DFree)
	assert.Equal(t, uint32(10), DistanceSpectrumTable()[0].DFree)
}
