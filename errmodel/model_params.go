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

	"github.com/pkg/errors"

	. "github.com/openthread/ot-wifi-per/types"
)

// NegativeSnrPolicy selects how the models treat a negative linear SNR.
type NegativeSnrPolicy string

const (
	NegativeSnrReject NegativeSnrPolicy = "reject" // return ErrInvalidInput
	NegativeSnrClamp  NegativeSnrPolicy = "clamp"  // evaluate as SNR 0
)

// default error model parameters
const (
	defaultHeaderWidth       MHz     = 20  // width at which header/common fields are carried
	defaultHeaderClampWidth  MHz     = 40  // PPDUs at least this wide carry headers at defaultHeaderWidth
	defaultSnrMinThresholdDb DbValue = 4.0 // threshold model: minimum SNR for a received chunk
)

// ErrorModelParams stores parameters shared by the error rate models.
type ErrorModelParams struct {
	NegativeSnr       NegativeSnrPolicy `yaml:"negative-snr"`
	HeaderWidth       MHz               `yaml:"header-width"`
	HeaderClampWidth  MHz               `yaml:"header-clamp-width"`
	SnrMinThresholdDb DbValue           `yaml:"snr-min-threshold"`
}

// NewErrorModelParams gets a new set of parameters with default values.
func NewErrorModelParams() *ErrorModelParams {
	return &ErrorModelParams{
		NegativeSnr:       NegativeSnrReject,
		HeaderWidth:       defaultHeaderWidth,
		HeaderClampWidth:  defaultHeaderClampWidth,
		SnrMinThresholdDb: defaultSnrMinThresholdDb,
	}
}

// Validate checks the parameters for consistency.
func (p *ErrorModelParams) Validate() error {
	switch p.NegativeSnr {
	case NegativeSnrReject, NegativeSnrClamp:
	default:
		return errors.Errorf("invalid negative-snr policy: %q", p.NegativeSnr)
	}
	if p.HeaderWidth == 0 {
		return errors.Errorf("header-width must be > 0")
	}
	if p.HeaderClampWidth < p.HeaderWidth {
		return errors.Errorf("header-clamp-width (%d) must be >= header-width (%d)", p.HeaderClampWidth, p.HeaderWidth)
	}
	if math.IsNaN(p.SnrMinThresholdDb) {
		return errors.Errorf("snr-min-threshold must be a number")
	}
	return nil
}

// checkSnr applies the negative SNR policy and returns the SNR to evaluate.
func (p *ErrorModelParams) checkSnr(snr float64) (float64, error) {
	if math.IsNaN(snr) {
		return 0, invalidInputf("snr is NaN")
	}
	if snr < 0 {
		if p.NegativeSnr == NegativeSnrClamp {
			return 0, nil
		}
		return 0, invalidInputf("negative snr %v", snr)
	}
	return snr, nil
}
