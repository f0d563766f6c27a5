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

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// register is the register-access capability for one chip. Writes rely on
// the register address auto-incrementing, so a burst starts with the first
// register and carries the following values.
type register struct {
	bus  drivers.I2C
	addr uint16
	wbuf [1 + 8]byte
	rbuf [1]byte
}

func (r *register) probe() error {
	r.wbuf[0] = DeviceStatus
	return r.bus.Tx(r.addr, r.wbuf[:1], r.rbuf[:])
}

func (r *register) read(reg uint8) (uint8, error) {
	r.wbuf[0] = reg
	if err := r.bus.Tx(r.addr, r.wbuf[:1], r.rbuf[:]); err != nil {
		return 0, fmt.Errorf("%w: read register %d: %w", ErrTransaction, reg, err)
	}
	return r.rbuf[0], nil
}

func (r *register) write(reg uint8, data ...byte) error {
	w := append(r.wbuf[:0], reg)
	w = append(w, data...)
	if err := r.bus.Tx(r.addr, w, nil); err != nil {
		return fmt.Errorf("%w: write register %d: %w", ErrTransaction, reg, err)
	}
	return nil
}

// release detaches the capability from its bus. Any later use panics.
func (r *register) release() {
	r.bus = nil
}
