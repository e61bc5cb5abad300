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

package wifiphy

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"
)

// ModulationClass is the PHY family a WifiMode belongs to. The order is significant: every class from
// ModClassErpOfdm onwards uses OFDM with a convolutional (BCC) code.
type ModulationClass byte

const (
	ModClassUnknown ModulationClass = iota
	ModClassDsss
	ModClassHrDsss
	ModClassErpOfdm
	ModClassOfdm
	ModClassHt
	ModClassVht
	ModClassHe
	ModClassEht
)

func (c ModulationClass) String() string {
	switch c {
	case ModClassUnknown:
		return "Unknown"
	case ModClassDsss:
		return "DSSS"
	case ModClassHrDsss:
		return "HR-DSSS"
	case ModClassErpOfdm:
		return "ERP-OFDM"
	case ModClassOfdm:
		return "OFDM"
	case ModClassHt:
		return "HT"
	case ModClassVht:
		return "VHT"
	case ModClassHe:
		return "HE"
	case ModClassEht:
		return "EHT"
	default:
		simplelogger.Panicf("invalid ModulationClass: %d", c)
		return "invalid"
	}
}

// CodeRate is the rate of the convolutional code used by a mode.
type CodeRate byte

const (
	CodeRateUndefined CodeRate = iota // uncoded (DSSS/HR-DSSS) modes
	CodeRate1_2
	CodeRate2_3
	CodeRate3_4
	CodeRate5_6
)

// Ratio returns numerator and denominator of the code rate; (1, 1) if undefined.
func (r CodeRate) Ratio() (uint64, uint64) {
	switch r {
	case CodeRate1_2:
		return 1, 2
	case CodeRate2_3:
		return 2, 3
	case CodeRate3_4:
		return 3, 4
	case CodeRate5_6:
		return 5, 6
	default:
		return 1, 1
	}
}

func (r CodeRate) String() string {
	if r == CodeRateUndefined {
		return "undefined"
	}
	num, den := r.Ratio()
	return fmt.Sprintf("%d/%d", num, den)
}

// ParseCodeRate parses "1/2", "2/3", "3/4", "5/6" or "undefined".
func ParseCodeRate(s string) (CodeRate, error) {
	for _, r := range []CodeRate{CodeRateUndefined, CodeRate1_2, CodeRate2_3, CodeRate3_4, CodeRate5_6} {
		if r.String() == s {
			return r, nil
		}
	}
	return CodeRateUndefined, errors.Errorf("invalid code rate: %s", s)
}
