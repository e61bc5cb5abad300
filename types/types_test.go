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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDbConversions(t *testing.T) {
	assert.Equal(t, 10.0, RatioToDb(10))
	assert.Equal(t, 0.0, RatioToDb(1))
	assert.True(t, math.IsInf(RatioToDb(0), -1))
	assert.True(t, math.IsInf(RatioToDb(-3), -1))
	assert.InDelta(t, 100.0, DbToRatio(20), 1e-12)
	assert.InDelta(t, 3.0, RatioToDb(DbToRatio(3)), 1e-12)
}

func TestPpduField(t *testing.T) {
	for f := PpduFieldPreamble; f <= PpduFieldData; f++ {
		parsed, err := ParsePpduField(f.String())
		assert.Nil(t, err)
		assert.Equal(t, f, parsed)
		assert.Equal(t, f != PpduFieldData, f.IsHeader())
	}
	parsed, err := ParsePpduField("SIG_A")
	assert.Nil(t, err)
	assert.Equal(t, PpduFieldSigA, parsed)

	_, err = ParsePpduField("payload")
	assert.NotNil(t, err)
	assert.False(t, PpduField(9).IsValid())
	assert.Equal(t, "invalid(42)", PpduField(42).String())
}
