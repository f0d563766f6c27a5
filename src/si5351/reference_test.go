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
	"bytes"
	"testing"

	reference "github.com/chiefMarlin/tinygo-drivers/si5351"
)

// The PLL and multisynth windows must come out byte for byte the same as
// with the tinygo driver for settings both drivers handle the same way.
func Test_matchesTinygoDriver(t *testing.T) {
	tests := []struct {
		name string
		ref  func(bus *fakeBus) error
		ours func(d *Device) error
	}{
		{
			name: "integer",
			ref: func(bus *fakeBus) error {
				r := reference.New(bus)
				if err := r.Configure(); err != nil {
					return err
				}
				if err := r.ConfigurePLL(reference.PLL_A, 30, 0, 1); err != nil {
					return err
				}
				return r.ConfigureMultisynth(0, reference.PLL_A, 26, 0, 1)
			},
			ours: func(d *Device) error {
				if err := d.ConfigurePLL(PLL_A, 30, 0, 1); err != nil {
					return err
				}
				return d.ConfigureMultisynth(0, PLL_A, 26, 0, 1)
			},
		},
		{
			name: "fractional pll",
			ref: func(bus *fakeBus) error {
				r := reference.New(bus)
				if err := r.Configure(); err != nil {
					return err
				}
				if err := r.ConfigurePLL(reference.PLL_A, 36, 1, 3); err != nil {
					return err
				}
				return r.ConfigureMultisynth(0, reference.PLL_A, 26, 0, 1)
			},
			ours: func(d *Device) error {
				if err := d.ConfigurePLL(PLL_A, 36, 1, 3); err != nil {
					return err
				}
				return d.ConfigureMultisynth(0, PLL_A, 26, 0, 1)
			},
		},
		{
			name: "fractional output",
			ref: func(bus *fakeBus) error {
				r := reference.New(bus)
				if err := r.Configure(); err != nil {
					return err
				}
				if err := r.ConfigurePLL(reference.PLL_A, 32, 0, 1); err != nil {
					return err
				}
				return r.ConfigureMultisynth(0, reference.PLL_A, 26, 1, 3)
			},
			ours: func(d *Device) error {
				if err := d.ConfigurePLL(PLL_A, 32, 0, 1); err != nil {
					return err
				}
				return d.ConfigureMultisynth(0, PLL_A, 26, 1, 3)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := &fakeBus{}
			if err := tt.ref(want); err != nil {
				t.Fatalf("reference driver: %v", err)
			}
			d, got, err := openDevice(Config{})
			if err != nil {
				t.Fatal(err)
			}
			if err := tt.ours(d); err != nil {
				t.Fatal(err)
			}
			for _, base := range []int{PLLAParameters, Multisynth0Parameters1} {
				if !bytes.Equal(got.regs[base:base+8], want.regs[base:base+8]) {
					t.Errorf("registers %d.. = % x, reference wrote % x", base, got.regs[base:base+8], want.regs[base:base+8])
				}
			}
		})
	}
}
