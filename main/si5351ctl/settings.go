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

package main

import (
	"clockgen/src/si5351"
	"clockgen/src/support"
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

type pllSetting struct {
	pll   si5351.PLL
	ratio support.Ratio
}

type clockSetting struct {
	output uint8
	pll    si5351.PLL
	ratio  support.Ratio
}

type rdivSetting struct {
	output uint8
	div    si5351.RDiv
}

func parsePLLName(s string) (si5351.PLL, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return si5351.PLL_A, nil
	case "B":
		return si5351.PLL_B, nil
	}
	return 0, fmt.Errorf("unknown PLL %q, want A or B", s)
}

func parseOutput(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil || v > 2 {
		return 0, fmt.Errorf("bad output %q, want 0..2", s)
	}
	return uint8(v), nil
}

// parsePLLSetting reads "A=36" or "B=28 1/3".
func parsePLLSetting(s string) (pllSetting, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return pllSetting{}, fmt.Errorf("bad PLL setting %q, want NAME=RATIO", s)
	}
	pll, err := parsePLLName(name)
	if err != nil {
		return pllSetting{}, err
	}
	r, err := support.ParseRatio(value, support.MaxDenominator)
	if err != nil {
		return pllSetting{}, err
	}
	if r.A > 255 {
		return pllSetting{}, fmt.Errorf("PLL multiplier %s too large", r)
	}
	return pllSetting{pll: pll, ratio: r}, nil
}

// parseClockSetting reads "0=A:6" or "2=B:26.25".
func parseClockSetting(s string) (clockSetting, error) {
	out, rest, ok := strings.Cut(s, "=")
	if !ok {
		return clockSetting{}, fmt.Errorf("bad clock setting %q, want OUTPUT=PLL:RATIO", s)
	}
	name, value, ok := strings.Cut(rest, ":")
	if !ok {
		return clockSetting{}, fmt.Errorf("bad clock setting %q, want OUTPUT=PLL:RATIO", s)
	}
	output, err := parseOutput(out)
	if err != nil {
		return clockSetting{}, err
	}
	pll, err := parsePLLName(name)
	if err != nil {
		return clockSetting{}, err
	}
	r, err := support.ParseRatio(value, support.MaxDenominator)
	if err != nil {
		return clockSetting{}, err
	}
	return clockSetting{output: output, pll: pll, ratio: r}, nil
}

// parseRDivSetting reads "1=16", the divider being a power of two up to 128.
func parseRDivSetting(s string) (rdivSetting, error) {
	out, value, ok := strings.Cut(s, "=")
	if !ok {
		return rdivSetting{}, fmt.Errorf("bad R divider setting %q, want OUTPUT=DIVIDER", s)
	}
	output, err := parseOutput(out)
	if err != nil {
		return rdivSetting{}, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 8)
	if err != nil || v == 0 || v&(v-1) != 0 {
		return rdivSetting{}, fmt.Errorf("bad R divider %q, want 1, 2, 4 ... 128", value)
	}
	return rdivSetting{output: output, div: si5351.RDiv(bits.TrailingZeros64(v))}, nil
}

func parseLoad(pf int) (si5351.CrystalLoad, error) {
	switch pf {
	case 6:
		return si5351.CrystalLoad6PF, nil
	case 8:
		return si5351.CrystalLoad8PF, nil
	case 10:
		return si5351.CrystalLoad10PF, nil
	}
	return 0, errors.New("crystal load must be 6, 8 or 10 pF")
}
