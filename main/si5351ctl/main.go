/*
 * Copyright 2025 Ted Dunning
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// si5351ctl programs an Si5351 clock generator from a Linux host.
package main

import (
	"clockgen/src/si5351"
	"clockgen/src/support"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"tinygo.org/x/drivers"
)

var (
	busName   string
	xtal      uint32
	loadPF    int
	ppm       uint32
	plls      []string
	clocks    []string
	rdivs     []string
	spread    bool
	disabled  bool
	openBusFn = func(name string) (drivers.I2C, io.Closer, error) {
		b, err := openBus(name)
		if err != nil {
			return nil, nil, err
		}
		return periphBus{bus: b}, b, nil
	}

	rootCmd = &cobra.Command{
		Use:          "si5351ctl",
		Short:        "Program an Si5351 clock generator",
		SilenceUsage: true,
	}

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Check that the chip answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(func(d *si5351.Device) error {
				ok, err := d.Connected()
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "si5351 found, still initializing")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "si5351 ready")
				return nil
			})
		},
	}

	presetCmd = &cobra.Command{
		Use:   "preset",
		Short: "Load the ClockBuilder test map (120MHz, 12MHz, 13.56MHz)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(func(d *si5351.Device) error {
				return d.LoadPreset()
			})
		},
	}

	offCmd = &cobra.Command{
		Use:   "off",
		Short: "Disable all outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(func(d *si5351.Device) error {
				return d.EnableOutputs(false)
			})
		},
	}

	setCmd = &cobra.Command{
		Use:   "set",
		Short: "Configure PLLs and outputs",
		Example: `  si5351ctl set --pll A=36 --clk 0=A:6
  si5351ctl set --pll A=30 --pll B=28.5 --clk 0=A:26 --clk '1=B:50 1/3' --rdiv 1=8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(func(d *si5351.Device) error {
				return configure(cmd.OutOrStdout(), d)
			})
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&busName, "bus", "", "I2C bus name, first available if empty")
	pf.Uint32Var(&xtal, "xtal", si5351.CrystalFreq25MHz, "crystal frequency in Hz")
	pf.IntVar(&loadPF, "load", 10, "crystal load capacitance in pF (6, 8 or 10)")
	pf.Uint32Var(&ppm, "ppm", 30, "crystal tolerance in ppm")

	f := setCmd.Flags()
	f.StringArrayVar(&plls, "pll", nil, "PLL multiplier as NAME=RATIO, e.g. A=36 or B=28 1/3")
	f.StringArrayVar(&clocks, "clk", nil, "output divider as OUTPUT=PLL:RATIO, e.g. 0=A:6")
	f.StringArrayVar(&rdivs, "rdiv", nil, "R divider as OUTPUT=DIVIDER, e.g. 0=4")
	f.BoolVar(&spread, "spread", false, "enable spread spectrum")
	f.BoolVar(&disabled, "disabled", false, "leave outputs disabled")

	rootCmd.AddCommand(probeCmd, presetCmd, offCmd, setCmd)
}

func withDevice(fn func(d *si5351.Device) error) error {
	load, err := parseLoad(loadPF)
	if err != nil {
		return err
	}
	bus, closer, err := openBusFn(busName)
	if err != nil {
		return err
	}
	defer closer.Close()

	d := si5351.New(si5351.Config{CrystalFrequency: xtal, CrystalLoad: load, CrystalPPM: ppm})
	if err := d.Open(bus); err != nil {
		return err
	}
	return fn(d)
}

func configure(w io.Writer, d *si5351.Device) error {
	var ps []pllSetting
	for _, s := range plls {
		p, err := parsePLLSetting(s)
		if err != nil {
			return err
		}
		ps = append(ps, p)
	}
	var cs []clockSetting
	for _, s := range clocks {
		c, err := parseClockSetting(s)
		if err != nil {
			return err
		}
		cs = append(cs, c)
	}
	var rs []rdivSetting
	for _, s := range rdivs {
		r, err := parseRDivSetting(s)
		if err != nil {
			return err
		}
		rs = append(rs, r)
	}

	for _, p := range ps {
		if err := d.ConfigurePLL(p.pll, uint8(p.ratio.A), p.ratio.B, p.ratio.C); err != nil {
			return fmt.Errorf("PLL %v: %w", p.pll, err)
		}
		vco, _ := d.PLLFrequency(p.pll)
		fmt.Fprintf(w, "PLL %v: %s x %d Hz = %d Hz\n", p.pll, p.ratio, d.Config().CrystalFrequency, vco)
	}
	rdiv := [3]uint32{1, 1, 1}
	for _, r := range rs {
		if err := d.ConfigureRDiv(r.output, r.div); err != nil {
			return fmt.Errorf("R divider %d: %w", r.output, err)
		}
		rdiv[r.output] = r.div.Divisor()
	}
	for _, c := range cs {
		if err := d.ConfigureMultisynth(c.output, c.pll, c.ratio.A, c.ratio.B, c.ratio.C); err != nil {
			return fmt.Errorf("clock %d: %w", c.output, err)
		}
		vco, _ := d.PLLFrequency(c.pll)
		f := support.OutputFrequency(float64(vco), c.ratio, rdiv[c.output])
		fmt.Fprintf(w, "CLK%d: PLL %v / %s / %d = %.3f Hz\n", c.output, c.pll, c.ratio, rdiv[c.output], f)
	}
	if err := d.EnableSpreadSpectrum(spread); err != nil {
		return err
	}
	return d.EnableOutputs(!disabled)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
