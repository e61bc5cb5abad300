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

package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-wifi-per/config"
	"github.com/openthread/ot-wifi-per/errmodel"
	"github.com/openthread/ot-wifi-per/logger"
	"github.com/openthread/ot-wifi-per/percache"
	"github.com/openthread/ot-wifi-per/prng"
	"github.com/openthread/ot-wifi-per/progctx"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

const (
	Prompt = "> "

	defaultSweepBits  = 1000
	defaultSweepStep  = 1.0
	maxSweepPoints    = 10000
	maxReceiveCount   = 10000000
	sweepSnrPrecision = 1e9 // sweep SNRs are rounded to 1e-9 dB for output
)

type CommandContext struct {
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

// outputItemsAsYaml writes a list with one flow-style item per line.
func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}
	cc.writeYaml(&itemsYaml)
}

// outputItemAsYaml writes a single item in flow style.
func (cc *CommandContext) outputItemAsYaml(item interface{}) {
	var itemYaml yaml.Node

	err := itemYaml.Encode(item)
	logger.PanicIfError(err)

	itemYaml.Style = yaml.FlowStyle
	cc.writeYaml(&itemYaml)
}

func (cc *CommandContext) writeYaml(node *yaml.Node) {
	data, err := yaml.Marshal(node)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes CLI commands against the selected error rate model.
type CmdRunner struct {
	ctx      *progctx.ProgCtx
	cfg      *config.Config
	metrics  *percache.Metrics
	model    errmodel.ErrorRateModel // the cache, if enabled
	cache    *percache.CachedModel
	receiver *errmodel.ChunkReceiver
	help     Help
}

// NewCmdRunner creates the runner with the model selected by cfg. metrics may be nil.
func NewCmdRunner(ctx *progctx.ProgCtx, cfg *config.Config, metrics *percache.Metrics) (*CmdRunner, error) {
	rt := &CmdRunner{
		ctx:     ctx,
		cfg:     cfg,
		metrics: metrics,
		help:    newHelp(),
	}
	if err := rt.setModel(cfg.Model); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *CmdRunner) setModel(name string) error {
	model, err := errmodel.Create(name, &rt.cfg.ModelParams)
	if err != nil {
		return err
	}

	var cache *percache.CachedModel
	if rt.cfg.Cache.Enabled {
		cache, err = percache.NewCachedModel(model, rt.cfg.Cache.Size, rt.cfg.Cache.SnrResolutionDb, rt.metrics)
		if err != nil {
			return err
		}
		model = cache
	}

	rt.model = model
	rt.cache = cache
	rt.receiver = errmodel.NewChunkReceiver(model, prng.NewReceiverRandomSeed())
	logger.Debugf("error rate model set to %s (cache enabled: %v)", model.GetName(), cache != nil)
	return nil
}

// Model returns the model used by the CLI commands.
func (rt *CmdRunner) Model() errmodel.ErrorRateModel {
	return rt.model
}

func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	return rt.RunCommand(cmdline, output)
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Ber != nil {
		rt.executeBer(cc, cmd.Ber)
	} else if cmd.Pd != nil {
		rt.executePd(cc, cmd.Pd)
	} else if cmd.Table != nil {
		rt.executeTable(cc, cmd.Table)
	} else if cmd.Modes != nil {
		rt.executeModes(cc, cmd.Modes)
	} else if cmd.Chunk != nil {
		rt.executeChunk(cc, cmd.Chunk)
	} else if cmd.Sweep != nil {
		rt.executeSweep(cc, cmd.Sweep)
	} else if cmd.Receive != nil {
		rt.executeReceive(cc, cmd.Receive)
	} else if cmd.Model != nil {
		rt.executeModel(cc, cmd.Model)
	} else if cmd.Cache != nil {
		rt.executeCache(cc, cmd.Cache)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) lookupMode(cc *CommandContext, sel ModeSelector) (wifiphy.WifiMode, bool) {
	mode, err := wifiphy.LookupMode(sel.Name)
	if err != nil {
		cc.error(err)
		return mode, false
	}
	return mode, true
}

func (rt *CmdRunner) getWidth(cc *CommandContext, flag *WidthFlag) (MHz, bool) {
	if flag == nil {
		return rt.cfg.ChannelWidth, true
	}
	if flag.Val <= 0 || flag.Val > math.MaxUint16 {
		cc.errorf("invalid channel width: %d", flag.Val)
		return 0, false
	}
	return MHz(flag.Val), true
}

func getBits(cc *CommandContext, flag *BitsFlag, defaultBits uint64) (uint64, bool) {
	if flag == nil {
		if defaultBits == 0 {
			cc.errorf("bits is required")
			return 0, false
		}
		return defaultBits, true
	}
	if flag.Val < 0 {
		cc.errorf("invalid number of bits: %d", flag.Val)
		return 0, false
	}
	return uint64(flag.Val), true
}

// getSnr returns the linear SNR given by the flag.
func getSnr(cc *CommandContext, flag *SnrFlag) (float64, bool) {
	if flag == nil {
		cc.errorf("snr is required")
		return 0, false
	}
	val, err := flag.Value.Float()
	if err != nil {
		cc.error(err)
		return 0, false
	}
	if flag.Linear != nil {
		return val, true
	}
	return DbToRatio(val), true
}

func (rt *CmdRunner) executeBer(cc *CommandContext, cmd *BerCmd) {
	mode, ok := rt.lookupMode(cc, cmd.Mode)
	if !ok {
		return
	}
	width, ok := rt.getWidth(cc, cmd.Width)
	if !ok {
		return
	}
	snr, ok := getSnr(cc, &cmd.Snr)
	if !ok {
		return
	}
	if !(snr >= 0) {
		cc.errorf("snr must be >= 0 (linear)")
		return
	}
	phyRate := mode.GetPhyRate(width)
	if phyRate == 0 {
		cc.errorf("mode %s is not defined at %d MHz", mode, width)
		return
	}

	switch {
	case mode.ConstellationSize == 2:
		cc.outputf("%v\n", errmodel.BpskBer(snr, width, phyRate))
	case mode.ConstellationSize >= 4:
		cc.outputf("%v\n", errmodel.QamBer(snr, mode.ConstellationSize, width, phyRate))
	default:
		cc.errorf("no BER function for constellation size %d", mode.ConstellationSize)
	}
}

func (rt *CmdRunner) executePd(cc *CommandContext, cmd *PdCmd) {
	ber, err := cmd.Ber.Float()
	if err != nil {
		cc.error(err)
		return
	}
	if !(ber >= 0 && ber <= 1) {
		cc.errorf("ber must be in [0,1]")
		return
	}
	if cmd.Distance <= 0 || cmd.Distance > math.MaxUint16 {
		cc.errorf("invalid distance: %d", cmd.Distance)
		return
	}
	cc.outputf("%v\n", errmodel.CalculatePd(ber, uint32(cmd.Distance)))
}

type tableRow struct {
	ConstellationSize uint16  `yaml:"m"`
	CodeRate          string  `yaml:"rate"`
	DFree             uint32  `yaml:"dfree"`
	AdFree            uint32  `yaml:"ad-free"`
	AdFreePlusOne     *uint32 `yaml:"ad-free-plus-one,omitempty"`
}

func (rt *CmdRunner) executeTable(cc *CommandContext, cmd *TableCmd) {
	var rows []tableRow
	for _, r := range errmodel.DistanceSpectrumTable() {
		row := tableRow{
			ConstellationSize: r.ConstellationSize,
			CodeRate:          r.CodeRate.String(),
			DFree:             r.DFree,
			AdFree:            r.AdFree,
		}
		if r.OtherRates {
			row.CodeRate = "other"
		}
		if r.TwoTerm {
			adFreePlusOne := r.AdFreePlusOne
			row.AdFreePlusOne = &adFreePlusOne
		}
		rows = append(rows, row)
	}
	cc.outputItemsAsYaml(rows)
}

var modulationClassFlags = map[string]wifiphy.ModulationClass{
	"dsss":   wifiphy.ModClassDsss,
	"hrdsss": wifiphy.ModClassHrDsss,
	"erp":    wifiphy.ModClassErpOfdm,
	"ofdm":   wifiphy.ModClassOfdm,
	"ht":     wifiphy.ModClassHt,
	"vht":    wifiphy.ModClassVht,
	"he":     wifiphy.ModClassHe,
	"eht":    wifiphy.ModClassEht,
}

type modeRow struct {
	Name     string `yaml:"name"`
	Class    string `yaml:"class"`
	M        uint16 `yaml:"m"`
	CodeRate string `yaml:"rate"`
	Mcs      uint8  `yaml:"mcs"`
	PhyRate  uint64 `yaml:"phy-rate"`
	DataRate uint64 `yaml:"data-rate"`
}

func (rt *CmdRunner) executeModes(cc *CommandContext, cmd *ModesCmd) {
	width, ok := rt.getWidth(cc, cmd.Width)
	if !ok {
		return
	}
	var rows []modeRow
	for _, m := range wifiphy.AllModes() {
		if cmd.Class != nil && modulationClassFlags[cmd.Class.Val] != m.Class {
			continue
		}
		rows = append(rows, modeRow{
			Name:     m.Name,
			Class:    m.Class.String(),
			M:        m.ConstellationSize,
			CodeRate: m.CodeRate.String(),
			Mcs:      m.Mcs,
			PhyRate:  m.GetPhyRate(width),
			DataRate: m.GetDataRate(width),
		})
	}
	cc.outputItemsAsYaml(rows)
}

func (rt *CmdRunner) executeChunk(cc *CommandContext, cmd *ChunkCmd) {
	mode, ok := rt.lookupMode(cc, cmd.Mode)
	if !ok {
		return
	}
	payload := mode
	if cmd.Payload != nil {
		if payload, ok = rt.lookupMode(cc, cmd.Payload.Mode); !ok {
			return
		}
	}
	width, ok := rt.getWidth(cc, cmd.Width)
	if !ok {
		return
	}
	snr, ok := getSnr(cc, cmd.Snr)
	if !ok {
		return
	}
	nbits, ok := getBits(cc, cmd.Bits, 0)
	if !ok {
		return
	}
	field := PpduFieldData
	if cmd.Field != nil {
		var err error
		if field, err = ParsePpduField(cmd.Field.Val); err != nil {
			cc.error(err)
			return
		}
	}

	// a station id makes the PPDU a MU PPDU with mode as the common mode
	txVector := wifiphy.NewSuTxVector(payload, width)
	staId := SuStaId
	if cmd.Sta != nil {
		if cmd.Sta.Val < 0 || cmd.Sta.Val >= int(SuStaId) {
			cc.errorf("invalid station id: %d", cmd.Sta.Val)
			return
		}
		staId = StaId(cmd.Sta.Val)
		txVector = wifiphy.NewMuTxVector(mode, width, map[StaId]wifiphy.WifiMode{staId: payload})
	}

	res, err := rt.model.ChunkSuccessRate(mode, txVector, snr, nbits, field, staId)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%v\n", res)
}

type sweepPoint struct {
	Snr float64     `yaml:"snr"`
	P   interface{} `yaml:"p"`
}

func (rt *CmdRunner) executeSweep(cc *CommandContext, cmd *SweepCmd) {
	mode, ok := rt.lookupMode(cc, cmd.Mode)
	if !ok {
		return
	}
	width, ok := rt.getWidth(cc, cmd.Width)
	if !ok {
		return
	}
	nbits, ok := getBits(cc, cmd.Bits, defaultSweepBits)
	if !ok {
		return
	}
	from, err := cmd.From.Float()
	if err != nil {
		cc.error(err)
		return
	}
	to, err := cmd.To.Float()
	if err != nil {
		cc.error(err)
		return
	}
	step := defaultSweepStep
	if cmd.Step != nil {
		if step, err = cmd.Step.Float(); err != nil {
			cc.error(err)
			return
		}
	}
	if !(step > 0) || to < from || (to-from)/step >= maxSweepPoints {
		cc.errorf("invalid sweep range: from %v to %v step %v", from, to, step)
		return
	}

	txVector := wifiphy.NewSuTxVector(mode, width)
	var points []sweepPoint
	for i := 0; ; i++ {
		snrDb := math.Round((from+float64(i)*step)*sweepSnrPrecision) / sweepSnrPrecision
		if snrDb > to {
			break
		}
		res, err := rt.model.ChunkSuccessRate(mode, txVector, DbToRatio(snrDb), nbits, PpduFieldData, SuStaId)
		if err != nil {
			cc.error(err)
			return
		}
		point := sweepPoint{Snr: snrDb, P: res.String()}
		if p, ok := res.SuccessProbability(); ok {
			point.P = p
		}
		points = append(points, point)
	}
	cc.outputItemsAsYaml(points)
}

type receiveSummary struct {
	Received    int     `yaml:"received"`
	Count       int     `yaml:"count"`
	Ratio       float64 `yaml:"ratio"`
	Probability float64 `yaml:"probability"`
}

func (rt *CmdRunner) executeReceive(cc *CommandContext, cmd *ReceiveCmd) {
	mode, ok := rt.lookupMode(cc, cmd.Mode)
	if !ok {
		return
	}
	width, ok := rt.getWidth(cc, cmd.Width)
	if !ok {
		return
	}
	snr, ok := getSnr(cc, cmd.Snr)
	if !ok {
		return
	}
	nbits, ok := getBits(cc, cmd.Bits, 0)
	if !ok {
		return
	}
	count := 1
	if cmd.Count != nil {
		count = cmd.Count.Val
	}
	if count <= 0 || count > maxReceiveCount {
		cc.errorf("invalid count: %d", count)
		return
	}

	txVector := wifiphy.NewSuTxVector(mode, width)
	summary := receiveSummary{}
	for i := 0; i < count && rt.ctx.Err() == nil; i++ {
		received, p, err := rt.receiver.Receive(mode, txVector, snr, nbits, PpduFieldData, SuStaId)
		if err != nil {
			cc.error(err)
			return
		}
		summary.Count++
		summary.Probability = p
		if received {
			summary.Received++
		}
	}
	summary.Ratio = float64(summary.Received) / float64(summary.Count)
	cc.outputItemAsYaml(summary)
}

func (rt *CmdRunner) executeModel(cc *CommandContext, cmd *ModelCmd) {
	if len(cmd.Model) > 0 {
		if err := rt.setModel(cmd.Model); err != nil {
			cc.error(err)
			return
		}
	}
	cc.outputf("%v\n", rt.model.GetName())
}

func (rt *CmdRunner) executeCache(cc *CommandContext, cmd *CacheCmd) {
	if rt.cache == nil {
		cc.errorf("cache is disabled")
		return
	}
	if cmd.Purge != nil {
		rt.cache.Purge()
		return
	}
	cc.outputItemAsYaml(rt.cache.Stats())
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.ctx.Cancel("exit")
}
