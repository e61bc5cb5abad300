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
	"github.com/openthread/ot-wifi-per/logger"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

// ThresholdErrorRateModel receives every chunk whose SNR reaches SnrMinThresholdDb and loses all others,
// regardless of mode and chunk size.
type ThresholdErrorRateModel struct {
	Name   string
	params ErrorModelParams
}

func NewThresholdErrorRateModel(params *ErrorModelParams) *ThresholdErrorRateModel {
	return &ThresholdErrorRateModel{
		Name:   ModelNameThreshold,
		params: *params,
	}
}

func (m *ThresholdErrorRateModel) GetName() string {
	return m.Name
}

func (m *ThresholdErrorRateModel) ChunkSuccessRate(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, snr float64,
	nbits uint64, field PpduField, staId StaId) (ChunkResult, error) {
	snr, err := validateCommon(&m.params, txVector, snr, field)
	if err != nil {
		return ChunkResult{}, err
	}
	if nbits == 0 {
		return Modeled(1), nil
	}
	snrDb := RatioToDb(snr)
	logger.Tracef("threshold: mode=%s field=%v sta=%d snrDb=%v min=%v", mode, field, staId, snrDb,
		m.params.SnrMinThresholdDb)
	if snrDb >= m.params.SnrMinThresholdDb {
		return Modeled(1), nil
	}
	return Modeled(0), nil
}
