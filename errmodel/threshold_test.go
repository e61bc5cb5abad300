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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

func TestThresholdModel(t *testing.T) {
	model := NewThresholdErrorRateModel(NewErrorModelParams())
	assert.Equal(t, ModelNameThreshold, model.GetName())

	for _, name := range []string{"DsssRate1Mbps", "OfdmRate6Mbps", "HeMcs11"} {
		mode := mustMode(t, name)
		tx := wifiphy.NewSuTxVector(mode, 20)

		res, err := model.ChunkSuccessRate(mode, tx, DbToRatio(10), 1000, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(1), res)

		res, err = model.ChunkSuccessRate(mode, tx, DbToRatio(4.01), 1000, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(1), res)

		res, err = model.ChunkSuccessRate(mode, tx, 2, 1000, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(0), res)

		res, err = model.ChunkSuccessRate(mode, tx, 0, 1000, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(0), res)

		res, err = model.ChunkSuccessRate(mode, tx, 0, 0, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(1), res)

		res, err = model.ChunkSuccessRate(mode, tx, math.Inf(1), 1000, PpduFieldData, SuStaId)
		assert.Nil(t, err)
		assert.Equal(t, Modeled(1), res)

		_, err = model.ChunkSuccessRate(mode, tx, -1, 1000, PpduFieldData, SuStaId)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = model.ChunkSuccessRate(mode, nil, 10, 1000, PpduFieldData, SuStaId)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestThresholdModelCustomThreshold(t *testing.T) {
	params := NewErrorModelParams()
	params.SnrMinThresholdDb = 20
	model := NewThresholdErrorRateModel(params)
	mode := mustMode(t, "VhtMcs9")
	tx := wifiphy.NewSuTxVector(mode, 80)

	res, err := model.ChunkSuccessRate(mode, tx, DbToRatio(19.5), 1000, PpduFieldData, SuStaId)
	assert.Nil(t, err)
	assert.Equal(t, Modeled(0), res)

	res, err = model.ChunkSuccessRate(mode, tx, DbToRatio(20.5), 1000, PpduFieldData, SuStaId)
	assert.Nil(t, err)
	assert.Equal(t, Modeled(1), res)
}
