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

/*
Package si5351 drives the Si5351 I2C clock generator.

The chip has two PLLs that multiply the crystal frequency up to 600..900MHz
and a fractional multisynth divider per output that brings a PLL back down to
the output frequency:

	fVCO = fXTAL * (mult + num/denom)
	fOUT = fVCO / (div + num/denom) / R

A PLL has to be configured before any output can use it. Only outputs 0..2
are handled here.
*/
package si5351

import (
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/drivers"
)

var (
	ErrNotInitialized   = errors.New("si5351: device not initialized")
	ErrInvalidParameter = errors.New("si5351: invalid parameter")
	ErrDeviceNotFound   = errors.New("si5351: device not found")
	ErrTransaction      = errors.New("si5351: i2c transaction failed")
)

// Config describes the reference crystal. Zero fields take the defaults of
// a 25MHz crystal with 10pF load and 30ppm tolerance.
type Config struct {
	CrystalFrequency uint32 // Hz
	CrystalLoad      CrystalLoad
	CrystalPPM       uint32
}

type pllState struct {
	configured bool
	frequency  uint32 // floor(fVCO) in Hz
}

// Device is a single Si5351. All methods may be called from several
// goroutines, each one holds the device for its whole register sequence.
type Device struct {
	mu          sync.Mutex
	cfg         Config
	bus         *register
	initialized bool
	pll         [2]pllState
	// last R divider bits written per output, already in position 6:4
	rdiv [channelCount]uint8
}

// New returns an unopened device for the given crystal.
func New(cfg Config) *Device {
	if cfg.CrystalFrequency == 0 {
		cfg.CrystalFrequency = CrystalFreq25MHz
	}
	if cfg.CrystalLoad == 0 {
		cfg.CrystalLoad = CrystalLoad10PF
	}
	if cfg.CrystalPPM == 0 {
		cfg.CrystalPPM = 30
	}
	return &Device{cfg: cfg}
}

// Config returns the crystal configuration in use.
func (d *Device) Config() Config {
	return d.cfg
}

/*
Open attaches the device to bus and puts the chip into a known state: all
outputs disabled, all output drivers powered down, crystal load set and
spread spectrum off. Both PLLs are forgotten and must be configured again.

Open can be called again at any time, the previous bus attachment is released
first. If the chip does not answer, ErrDeviceNotFound is returned and nothing
is written.
*/
func (d *Device) Open(bus drivers.I2C) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus != nil {
		d.bus.release()
		d.bus = nil
	}
	d.initialized = false
	if bus == nil {
		return fmt.Errorf("%w: nil bus", ErrInvalidParameter)
	}

	r := &register{bus: bus, addr: AddressDefault}
	if err := r.probe(); err != nil {
		return fmt.Errorf("%w at 0x%02x: %v", ErrDeviceNotFound, AddressDefault, err)
	}
	d.bus = r

	if err := r.write(OutputEnableControl, outputsOff); err != nil {
		return err
	}
	var down [clockOutputs]byte
	for i := range down {
		down[i] = clkPowerDown
	}
	if err := r.write(Clk0Control, down[:]...); err != nil {
		return err
	}
	if err := r.write(CrystalInternalLoadCapacity, uint8(d.cfg.CrystalLoad)); err != nil {
		return err
	}
	if err := d.enableSpreadSpectrum(false); err != nil {
		return err
	}

	d.pll = [2]pllState{}
	d.initialized = true
	return nil
}

// Connected reports whether the chip answers and has finished its own
// power-up initialization.
func (d *Device) Connected() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus == nil {
		return false, ErrNotInitialized
	}
	status, err := d.bus.read(DeviceStatus)
	if err != nil {
		return false, err
	}
	return status&statusSysInit == 0, nil
}

/*
LoadPreset writes a complete register map generated by ClockBuilder for a
25MHz crystal, soft resets the PLLs and enables all outputs.

The cached PLL and R divider state is not updated, so call Open again before
going back to ConfigurePLL and ConfigureMultisynth.
*/
func (d *Device) LoadPreset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	if err := d.bus.write(OutputEnableControl, outputsOff); err != nil {
		return err
	}
	for _, rv := range preset {
		if err := d.bus.write(rv[0], rv[1]); err != nil {
			return err
		}
	}
	if err := d.bus.write(PLLReset, softResetAll); err != nil {
		return err
	}
	return d.bus.write(OutputEnableControl, outputsOn)
}

// ConfigurePLLInt sets pll to an integer multiple of the crystal frequency.
func (d *Device) ConfigurePLLInt(pll PLL, mult uint8) error {
	return d.ConfigurePLL(pll, mult, 0, 1)
}

/*
ConfigurePLL sets pll to fXTAL * (mult + num/denom).

mult must be in 15..90, num in 0..1048575 and denom in 1..1048575. The result
should land in 600..900MHz but that is left to the caller. Use num = 0
whenever possible, integer mode has less jitter.

The chip can only reset both PLLs together, so configuring one PLL also
resets the other. Its registers keep their values and it relocks.
*/
func (d *Device) ConfigurePLL(pll PLL, mult uint8, num, denom uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	if pll > PLL_B {
		return fmt.Errorf("%w: PLL %d", ErrInvalidParameter, pll)
	}
	if mult < 15 || mult > 90 {
		return fmt.Errorf("%w: PLL multiplier %d outside 15..90", ErrInvalidParameter, mult)
	}
	if err := checkFraction(num, denom); err != nil {
		return err
	}

	regs := PLLParams(mult, num, denom).registers(0)
	if err := d.bus.write(pllBase[pll], regs[:]...); err != nil {
		return err
	}
	if err := d.bus.write(PLLReset, pllResetBoth); err != nil {
		return err
	}

	x := uint64(d.cfg.CrystalFrequency)
	d.pll[pll] = pllState{
		configured: true,
		frequency:  uint32(x*uint64(mult) + x*uint64(num)/uint64(denom)),
	}
	return nil
}

// PLLFrequency returns the VCO frequency of pll in Hz, rounded down, and
// whether it has been configured since the last Open.
func (d *Device) PLLFrequency(pll PLL) (uint32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if pll > PLL_B {
		return 0, false
	}
	return d.pll[pll].frequency, d.pll[pll].configured
}

// ConfigureMultisynthInt drives output from pllSource through an integer divider.
func (d *Device) ConfigureMultisynthInt(output uint8, pllSource PLL, div MultisynthDiv) error {
	return d.ConfigureMultisynth(output, pllSource, uint32(div), 0, 1)
}

/*
ConfigureMultisynth sets output (0..2) to fVCO / (div + num/denom) where fVCO
comes from pllSource, and powers the output driver up with 8mA drive.

div must be in 4..2048, num in 0..1048575 and denom in 1..1048575. Practical
outputs are 500kHz..150MHz, this is not checked. The R divider previously set
with ConfigureRDiv is kept.
*/
func (d *Device) ConfigureMultisynth(output uint8, pllSource PLL, div, num, denom uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	if output >= channelCount {
		return fmt.Errorf("%w: output %d", ErrInvalidParameter, output)
	}
	if pllSource > PLL_B {
		return fmt.Errorf("%w: PLL %d", ErrInvalidParameter, pllSource)
	}
	if div < 4 || div > 2048 {
		return fmt.Errorf("%w: multisynth divider %d outside 4..2048", ErrInvalidParameter, div)
	}
	if err := checkFraction(num, denom); err != nil {
		return err
	}
	if !d.pll[pllSource].configured {
		return fmt.Errorf("%w: PLL %v is not configured", ErrInvalidParameter, pllSource)
	}

	regs := MultisynthParams(div, num, denom).registers(d.rdiv[output])
	if err := d.bus.write(multisynthBase[output], regs[:]...); err != nil {
		return err
	}

	ctrl := uint8(clkDefault)
	if pllSource == PLL_B {
		ctrl |= clkSourcePLLB
	}
	if num == 0 {
		ctrl |= clkIntegerMode
	}
	return d.bus.write(Clk0Control+output, ctrl)
}

// ConfigureRDiv sets the power-of-two divider after the multisynth of
// output. It is remembered and carried into later multisynth writes.
func (d *Device) ConfigureRDiv(output uint8, div RDiv) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus == nil {
		return ErrNotInitialized
	}
	if output >= channelCount {
		return fmt.Errorf("%w: output %d", ErrInvalidParameter, output)
	}
	if div > RDiv128 {
		return fmt.Errorf("%w: R divider exponent %d", ErrInvalidParameter, div)
	}

	reg := rdivRegister[output]
	v, err := d.bus.read(reg)
	if err != nil {
		return err
	}
	bits := uint8(div) << 4
	if err := d.bus.write(reg, v&0x0F|bits); err != nil {
		return err
	}
	d.rdiv[output] = bits
	return nil
}

// EnableOutputs turns all clock outputs on or off.
func (d *Device) EnableOutputs(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	v := uint8(outputsOff)
	if enabled {
		v = outputsOn
	}
	return d.bus.write(OutputEnableControl, v)
}

// EnableSpreadSpectrum switches spread spectrum modulation on or off. It
// only needs a bus, Open uses it before the device counts as initialized.
func (d *Device) EnableSpreadSpectrum(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus == nil {
		return ErrNotInitialized
	}
	return d.enableSpreadSpectrum(enabled)
}

func (d *Device) enableSpreadSpectrum(enabled bool) error {
	v, err := d.bus.read(SpreadSpectrumParameters)
	if err != nil {
		return err
	}
	if enabled {
		v |= spreadEnable
	} else {
		v &^= spreadEnable
	}
	return d.bus.write(SpreadSpectrumParameters, v)
}

func checkFraction(num, denom uint32) error {
	switch {
	case denom == 0:
		return fmt.Errorf("%w: zero denominator", ErrInvalidParameter)
	case num > maxFraction:
		return fmt.Errorf("%w: numerator %d exceeds 20 bits", ErrInvalidParameter, num)
	case denom > maxFraction:
		return fmt.Errorf("%w: denominator %d exceeds 20 bits", ErrInvalidParameter, denom)
	}
	return nil
}
