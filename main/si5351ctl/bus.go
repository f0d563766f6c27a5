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
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// periphBus lets a periph.io I2C bus stand in for a tinygo drivers.I2C.
type periphBus struct {
	bus i2c.Bus
}

func (p periphBus) Tx(addr uint16, w, r []byte) error {
	return p.bus.Tx(addr, w, r)
}

func (p periphBus) ReadRegister(addr uint8, reg uint8, buf []byte) error {
	return p.bus.Tx(uint16(addr), []byte{reg}, buf)
}

func (p periphBus) WriteRegister(addr uint8, reg uint8, buf []byte) error {
	return p.bus.Tx(uint16(addr), append([]byte{reg}, buf...), nil)
}

// openBus opens the named I2C bus, or the first one found when name is empty.
func openBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}
