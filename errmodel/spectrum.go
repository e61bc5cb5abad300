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
	"sort"

	"github.com/openthread/ot-wifi-per/wifiphy"
)

// Coefficients describe the distance spectrum of a (punctured) convolutional code: the free distance and
// the number of error paths at dFree and, for two-term entries, at dFree+1.
type Coefficients struct {
	DFree         uint32
	AdFree        uint32
	AdFreePlusOne uint32
	TwoTerm       bool
}

// DistanceSpectrumRow is one row of the distance spectrum table. Rows with OtherRates set apply to every
// defined code rate that has no explicit row for the constellation.
type DistanceSpectrumRow struct {
	ConstellationSize uint16
	CodeRate          wifiphy.CodeRate
	OtherRates        bool
	Coefficients
}

type spectrumEntry struct {
	byRate map[wifiphy.CodeRate]Coefficients
	other  Coefficients
}

func singleTerm(dFree, adFree uint32) Coefficients {
	return Coefficients{DFree: dFree, AdFree: adFree}
}

func twoTerm(dFree, adFree, adFreePlusOne uint32) Coefficients {
	return Coefficients{DFree: dFree, AdFree: adFree, AdFreePlusOne: adFreePlusOne, TwoTerm: true}
}

func lowOrderQamEntry() spectrumEntry {
	return spectrumEntry{
		byRate: map[wifiphy.CodeRate]Coefficients{wifiphy.CodeRate1_2: twoTerm(10, 11, 0)},
		other:  twoTerm(5, 8, 31),
	}
}

func highOrderQamEntry() spectrumEntry {
	// rate 5/6: Table B.32 in P. Frenger et al., "Multi-rate Convolutional Codes".
	return spectrumEntry{
		byRate: map[wifiphy.CodeRate]Coefficients{wifiphy.CodeRate5_6: twoTerm(4, 14, 69)},
		other:  twoTerm(5, 8, 31),
	}
}

// distanceSpectrum is never modified after package init.
var distanceSpectrum = map[uint16]spectrumEntry{
	2: {
		byRate: map[wifiphy.CodeRate]Coefficients{wifiphy.CodeRate1_2: singleTerm(10, 11)},
		other:  singleTerm(5, 8),
	},
	4:  lowOrderQamEntry(),
	16: lowOrderQamEntry(),
	64: {
		byRate: map[wifiphy.CodeRate]Coefficients{
			wifiphy.CodeRate2_3: twoTerm(6, 1, 16),
			wifiphy.CodeRate5_6: twoTerm(4, 14, 69),
		},
		other: twoTerm(5, 8, 31),
	},
	256:  highOrderQamEntry(),
	1024: highOrderQamEntry(),
	4096: highOrderQamEntry(),
}

// LookupCoefficients returns the distance spectrum coefficients for a constellation size and code rate.
func LookupCoefficients(constellationSize uint16, codeRate wifiphy.CodeRate) (Coefficients, error) {
	entry, ok := distanceSpectrum[constellationSize]
	if !ok {
		return Coefficients{}, invalidInputf("constellation size %d not in distance spectrum table", constellationSize)
	}
	if codeRate == wifiphy.CodeRateUndefined {
		return Coefficients{}, invalidInputf("code rate undefined for constellation size %d", constellationSize)
	}
	if c, ok := entry.byRate[codeRate]; ok {
		return c, nil
	}
	return entry.other, nil
}

// DistanceSpectrumTable returns a copy of the full table, ordered by constellation size, with explicit code
// rates before the OtherRates row.
func DistanceSpectrumTable() []DistanceSpectrumRow {
	sizes := make([]int, 0, len(distanceSpectrum))
	for m := range distanceSpectrum {
		sizes = append(sizes, int(m))
	}
	sort.Ints(sizes)

	var rows []DistanceSpectrumRow
	for _, m := range sizes {
		entry := distanceSpectrum[uint16(m)]
		rates := make([]int, 0, len(entry.byRate))
		for r := range entry.byRate {
			rates = append(rates, int(r))
		}
		sort.Ints(rates)
		for _, r := range rates {
			rows = append(rows, DistanceSpectrumRow{
				ConstellationSize: uint16(m),
				CodeRate:          wifiphy.CodeRate(r),
				Coefficients:      entry.byRate[wifiphy.CodeRate(r)],
			})
		}
		rows = append(rows, DistanceSpectrumRow{
			ConstellationSize: uint16(m),
			OtherRates:        true,
			Coefficients:      entry.other,
		})
	}
	return rows
}
