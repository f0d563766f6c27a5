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

package si5351

// AddressDefault is the I2C address with the ADDR pin low.
const AddressDefault = 0x60

// Registers
const (
	DeviceStatus                = 0
	InterruptStatusSticky       = 1
	InterruptStatusMask         = 2
	OutputEnableControl         = 3
	OEBPinEnableControl         = 9
	PLLInputSource              = 15
	Clk0Control                 = 16
	Clk1Control                 = 17
	Clk2Control                 = 18
	Clk3Control                 = 19
	Clk4Control                 = 20
	Clk5Control                 = 21
	Clk6Control                 = 22
	Clk7Control                 = 23
	Clk3_0DisableState          = 24
	Clk7_4DisableState          = 25
	PLLAParameters              = 26
	PLLBParameters              = 34
	Multisynth0Parameters1      = 42
	Multisynth0Parameters3      = 44
	Multisynth1Parameters1      = 50
	Multisynth1Parameters3      = 52
	Multisynth2Parameters1      = 58
	Multisynth2Parameters3      = 60
	SpreadSpectrumParameters    = 149
	Clk0InitialPhaseOffset      = 165
	PLLReset                    = 177
	CrystalInternalLoadCapacity = 183
)

// device status bits
const (
	statusSysInit = 1 << 7
	statusLolB    = 1 << 6
	statusLolA    = 1 << 5
	statusLos     = 1 << 4
)

// clock control bits
const (
	clkPowerDown   = 1 << 7
	clkIntegerMode = 1 << 6
	clkSourcePLLB  = 1 << 5
	// 8mA drive, not inverted, multisynth as its own source, powered up
	clkDefault = 0x0F
)

const (
	pllResetBoth = 1<<7 | 1<<5
	softResetAll = 0xAC
	spreadEnable = 1 << 7
	outputsOff   = 0xFF
	outputsOn    = 0x00
	rdivMask     = 0x70
	maxFraction  = 0xFFFFF
	channelCount = 3
	clockOutputs = 8
)

// PLL selects one of the two phase-locked loops.
type PLL uint8

const (
	PLL_A PLL = iota
	PLL_B
)

func (p PLL) String() string {
	if p == PLL_B {
		return "B"
	}
	return "A"
}

// CrystalLoad is the internal load capacitance presented to the crystal.
type CrystalLoad uint8

const (
	CrystalLoad6PF  CrystalLoad = 1 << 6
	CrystalLoad8PF  CrystalLoad = 2 << 6
	CrystalLoad10PF CrystalLoad = 3 << 6
)

const (
	CrystalFreq25MHz = 25_000_000
	CrystalFreq27MHz = 27_000_000
)

// MultisynthDiv is one of the integer dividers usable in integer mode.
type MultisynthDiv uint32

const (
	MultisynthDiv4 MultisynthDiv = 4
	MultisynthDiv6 MultisynthDiv = 6
	MultisynthDiv8 MultisynthDiv = 8
)

// RDiv is the exponent of the power-of-two output divider.
type RDiv uint8

const (
	RDiv1 RDiv = iota
	RDiv2
	RDiv4
	RDiv8
	RDiv16
	RDiv32
	RDiv64
	RDiv128
)

// Divisor returns the division ratio encoded by r.
func (r RDiv) Divisor() uint32 {
	return 1 << (r & 7)
}

// multisynthBase and rdivRegister are indexed by output channel.
var (
	multisynthBase = [channelCount]uint8{Multisynth0Parameters1, Multisynth1Parameters1, Multisynth2Parameters1}
	rdivRegister   = [channelCount]uint8{Multisynth0Parameters3, Multisynth1Parameters3, Multisynth2Parameters3}
	pllBase        = [2]uint8{PLLAParameters, PLLBParameters}
)

/*
preset is a register map generated with ClockBuilder Desktop for a 25MHz
crystal (registers 15-92 and 149-170). It produces

  - CLK0: 120.00 MHz
  - CLK1: 12.00 MHz
  - CLK2: 13.56 MHz
*/
var preset = [...][2]uint8{
	{15, 0x00}, // crystal feeds PLLA and PLLB
	{16, 0x4F}, // CLK0: 8mA, MS0, PLLA, integer mode, powered up
	{17, 0x4F}, // CLK1: 8mA, MS1, PLLA, integer mode, powered up
	{18, 0x6F}, // CLK2: 8mA, MS2, PLLB, integer mode, powered up
	{19, 0x80},
	{20, 0x80},
	{21, 0x80},
	{22, 0x80},
	{23, 0x80},
	{24, 0x00}, // disabled outputs are low
	{25, 0x00},
	// PLLA
	{26, 0x00}, {27, 0x05}, {28, 0x00}, {29, 0x0C}, {30, 0x66}, {31, 0x00}, {32, 0x00}, {33, 0x02},
	// PLLB
	{34, 0x02}, {35, 0x71}, {36, 0x00}, {37, 0x0C}, {38, 0x1A}, {39, 0x00}, {40, 0x00}, {41, 0x86},
	// multisynth 0..7
	{42, 0x00}, {43, 0x01}, {44, 0x00}, {45, 0x01}, {46, 0x00}, {47, 0x00}, {48, 0x00}, {49, 0x00},
	{50, 0x00}, {51, 0x01}, {52, 0x00}, {53, 0x1C}, {54, 0x00}, {55, 0x00}, {56, 0x00}, {57, 0x00},
	{58, 0x00}, {59, 0x01}, {60, 0x00}, {61, 0x18}, {62, 0x00}, {63, 0x00}, {64, 0x00}, {65, 0x00},
	{66, 0x00}, {67, 0x00}, {68, 0x00}, {69, 0x00}, {70, 0x00}, {71, 0x00}, {72, 0x00}, {73, 0x00},
	{74, 0x00}, {75, 0x00}, {76, 0x00}, {77, 0x00}, {78, 0x00}, {79, 0x00}, {80, 0x00}, {81, 0x00},
	{82, 0x00}, {83, 0x00}, {84, 0x00}, {85, 0x00}, {86, 0x00}, {87, 0x00}, {88, 0x00}, {89, 0x00},
	{90, 0x00}, {91, 0x00}, {92, 0x00},
	// spread spectrum and phase offsets
	{149, 0x00}, {150, 0x00}, {151, 0x00}, {152, 0x00}, {153, 0x00}, {154, 0x00}, {155, 0x00},
	{156, 0x00}, {157, 0x00}, {158, 0x00}, {159, 0x00}, {160, 0x00}, {161, 0x00}, {162, 0x00},
	{163, 0x00}, {164, 0x00}, {165, 0x00}, {166, 0x00}, {167, 0x00}, {168, 0x00}, {169, 0x00},
	{170, 0x00},
}
