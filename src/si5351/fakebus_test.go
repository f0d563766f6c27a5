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

import "errors"

var errNack = errors.New("no ack")

type transfer struct {
	reg  uint8
	data []byte
}

// fakeBus is an Si5351 register file behind a drivers.I2C.
type fakeBus struct {
	regs   [256]byte
	writes []transfer
	reads  int
	absent bool
	failAt int // fail the n-th write, counting from 1
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if b.absent || addr != AddressDefault {
		return errNack
	}
	if len(w) == 0 {
		return nil
	}
	reg := w[0]
	if len(r) > 0 {
		b.reads++
		for i := range r {
			r[i] = b.regs[reg+uint8(i)]
		}
		return nil
	}
	if b.failAt != 0 && len(b.writes)+1 == b.failAt {
		return errNack
	}
	for i, v := range w[1:] {
		b.regs[reg+uint8(i)] = v
	}
	b.writes = append(b.writes, transfer{reg: reg, data: append([]byte(nil), w[1:]...)})
	return nil
}

func (b *fakeBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *fakeBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

// lastWrite returns the most recent write that started at reg.
func (b *fakeBus) lastWrite(reg uint8) (transfer, bool) {
	for i := len(b.writes) - 1; i >= 0; i-- {
		if b.writes[i].reg == reg {
			return b.writes[i], true
		}
	}
	return transfer{}, false
}

func openDevice(cfg Config) (*Device, *fakeBus, error) {
	bus := &fakeBus{}
	d := New(cfg)
	err := d.Open(bus)
	return d, bus, err
}
