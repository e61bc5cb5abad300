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
	"math/bits"
	"sort"

	"github.com/pkg/errors"

	. "github.com/openthread/ot-wifi-per/types"
)

// OFDM numerology, in data subcarriers per channel width and symbol duration (ns, incl. guard interval).
const (
	ofdmDataSubcarriers = 48
	htSymbolNs          = 4000  // 3.2 us + 800 ns GI
	heSymbolNs          = 13600 // 12.8 us + 800 ns GI
)

var (
	ofdmSymbolNs  = map[MHz]uint64{5: 16000, 10: 8000, 20: 4000}
	htSubcarriers = map[MHz]uint64{20: 52, 40: 108, 80: 234, 160: 468}
	heSubcarriers = map[MHz]uint64{20: 234, 40: 468, 80: 980, 160: 1960, 320: 3920}
)

// WifiMode describes one modulation and coding scheme. Two modes are equal iff all fields are equal.
type WifiMode struct {
	Name              string
	Class             ModulationClass
	ConstellationSize uint16
	CodeRate          CodeRate
	Mcs               uint8  // MCS index for HT and later classes
	fixedRate         uint64 // bit/s, only for DSSS and HR-DSSS
}

// IsCodedOfdm returns true if the mode uses OFDM with a convolutional code.
func (m WifiMode) IsCodedOfdm() bool {
	return m.Class >= ModClassErpOfdm
}

func (m WifiMode) String() string {
	return m.Name
}

// GetPhyRate returns the coded bit rate (bit/s) of the mode at the given channel width, or 0 if the mode
// is not defined for that width.
func (m WifiMode) GetPhyRate(width MHz) uint64 {
	if m.ConstellationSize < 2 {
		return 0
	}
	bitsPerSubcarrier := uint64(bits.Len16(m.ConstellationSize) - 1)
	switch m.Class {
	case ModClassDsss, ModClassHrDsss:
		return m.fixedRate
	case ModClassOfdm, ModClassErpOfdm:
		if width > 20 {
			width = 20 // non-HT duplicate uses the 20 MHz numerology
		}
		symbolNs, ok := ofdmSymbolNs[width]
		if !ok {
			return 0
		}
		return ofdmDataSubcarriers * bitsPerSubcarrier * 1e9 / symbolNs
	case ModClassHt, ModClassVht:
		if m.Class == ModClassHt && width > 40 {
			return 0
		}
		return htSubcarriers[width] * bitsPerSubcarrier * 1e9 / htSymbolNs
	case ModClassHe, ModClassEht:
		return heSubcarriers[width] * bitsPerSubcarrier * 1e9 / heSymbolNs
	default:
		return 0
	}
}

// GetDataRate returns the information bit rate (bit/s) of the mode at the given channel width.
func (m WifiMode) GetDataRate(width MHz) uint64 {
	num, den := m.CodeRate.Ratio()
	return m.GetPhyRate(width) * num / den
}

type mcsParams struct {
	constellationSize uint16
	codeRate          CodeRate
}

// mcsTable lists MCS 0..13; HT uses 0-7, VHT 0-9, HE 0-11, EHT 0-13.
var mcsTable = []mcsParams{
	{2, CodeRate1_2}, {4, CodeRate1_2}, {4, CodeRate3_4}, {16, CodeRate1_2},
	{16, CodeRate3_4}, {64, CodeRate2_3}, {64, CodeRate3_4}, {64, CodeRate5_6},
	{256, CodeRate3_4}, {256, CodeRate5_6}, {1024, CodeRate3_4}, {1024, CodeRate5_6},
	{4096, CodeRate3_4}, {4096, CodeRate5_6},
}

var ofdmRates = []struct {
	mbps int
	mcsParams
}{
	{6, mcsParams{2, CodeRate1_2}}, {9, mcsParams{2, CodeRate3_4}},
	{12, mcsParams{4, CodeRate1_2}}, {18, mcsParams{4, CodeRate3_4}},
	{24, mcsParams{16, CodeRate1_2}}, {36, mcsParams{16, CodeRate3_4}},
	{48, mcsParams{64, CodeRate2_3}}, {54, mcsParams{64, CodeRate3_4}},
}

var modes = buildModeCatalogue()

func buildModeCatalogue() map[string]WifiMode {
	cat := map[string]WifiMode{}
	add := func(m WifiMode) {
		cat[m.Name] = m
	}

	add(WifiMode{Name: "DsssRate1Mbps", Class: ModClassDsss, ConstellationSize: 2, fixedRate: 1000000})
	add(WifiMode{Name: "DsssRate2Mbps", Class: ModClassDsss, ConstellationSize: 4, fixedRate: 2000000})
	add(WifiMode{Name: "DsssRate5_5Mbps", Class: ModClassHrDsss, ConstellationSize: 16, fixedRate: 5500000})
	add(WifiMode{Name: "DsssRate11Mbps", Class: ModClassHrDsss, ConstellationSize: 256, fixedRate: 11000000})

	for _, r := range ofdmRates {
		add(WifiMode{Name: fmt.Sprintf("OfdmRate%dMbps", r.mbps), Class: ModClassOfdm,
			ConstellationSize: r.constellationSize, CodeRate: r.codeRate})
		add(WifiMode{Name: fmt.Sprintf("ErpOfdmRate%dMbps", r.mbps), Class: ModClassErpOfdm,
			ConstellationSize: r.constellationSize, CodeRate: r.codeRate})
	}

	for _, fam := range []struct {
		prefix string
		class  ModulationClass
		maxMcs int
	}{{"HtMcs", ModClassHt, 7}, {"VhtMcs", ModClassVht, 9}, {"HeMcs", ModClassHe, 11}, {"EhtMcs", ModClassEht, 13}} {
		for mcs := 0; mcs <= fam.maxMcs; mcs++ {
			p := mcsTable[mcs]
			add(WifiMode{Name: fmt.Sprintf("%s%d", fam.prefix, mcs), Class: fam.class,
				ConstellationSize: p.constellationSize, CodeRate: p.codeRate, Mcs: uint8(mcs)})
		}
	}
	return cat
}

// LookupMode returns the catalogue mode with the given name.
func LookupMode(name string) (WifiMode, error) {
	if m, ok := modes[name]; ok {
		return m, nil
	}
	return WifiMode{}, errors.Errorf("unknown Wi-Fi mode: %s", name)
}

// AllModes returns all catalogue modes, ordered by class, MCS and rate.
func AllModes() []WifiMode {
	all := make([]WifiMode, 0, len(modes))
	for _, m := range modes {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Mcs != b.Mcs {
			return a.Mcs < b.Mcs
		}
		return a.GetDataRate(20) < b.GetDataRate(20)
	})
	return all
}
