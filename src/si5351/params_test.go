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

import "testing"

func Test_pllIntegerParams(t *testing.T) {
	for mult := uint8(15); mult <= 90; mult++ {
		p := PLLParams(mult, 0, 1)
		want := Params{P1: 128*uint32(mult) - 512, P2: 0, P3: 1}
		if p != want {
			t.Errorf("PLLParams(%d, 0, 1) = %+v, want %+v", mult, p, want)
		}
	}
}

// The general formula evaluated at num = 0 must land on the integer mode fields.
func Test_integerBoundary(t *testing.T) {
	for _, denom := range []uint32{1, 2, 3, 1000, 0xFFFFF} {
		for _, a := range []uint32{15, 36, 90} {
			f := 128 * 0 / denom
			general := Params{P1: 128*a + f - 512, P2: 128*0 - denom*f, P3: denom}
			if got := PLLParams(uint8(a), 0, denom); got != general {
				t.Errorf("PLLParams(%d, 0, %d) = %+v, want %+v", a, denom, got, general)
			}
			if got := MultisynthParams(a, 0, denom); got != general {
				t.Errorf("MultisynthParams(%d, 0, %d) = %+v, want %+v", a, denom, got, general)
			}
		}
	}
}

func Test_fractionalParams(t *testing.T) {
	tests := []struct {
		name      string
		got, want Params
	}{
		{"pll third", PLLParams(36, 1, 3), Params{P1: 4138, P2: 2, P3: 3}},
		{"pll half", PLLParams(24, 1, 2), Params{P1: 2624, P2: 0, P3: 2}},
		{"pll max fraction", PLLParams(90, 0xFFFFE, 0xFFFFF), Params{P1: 128*90 + 127 - 512, P2: 128*0xFFFFE - 0xFFFFF*127, P3: 0xFFFFF}},
		{"multisynth integer", MultisynthParams(6, 0, 1), Params{P1: 256, P2: 0, P3: 1}},
		{"multisynth unit denominator", MultisynthParams(10, 2, 1), Params{P1: 1024, P2: 128, P3: 1}},
		{"multisynth fraction", MultisynthParams(26, 1, 3), Params{P1: 2858, P2: 2, P3: 3}},
		{"multisynth largest", MultisynthParams(2048, 0, 1), Params{P1: 0x3FE00, P2: 0, P3: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
			if tt.got.P1 >= 1<<18 || tt.got.P2 >= 1<<20 || tt.got.P3 >= 1<<20 {
				t.Errorf("fields overflow: %+v", tt.got)
			}
		})
	}
}

func Test_registerLayout(t *testing.T) {
	p := Params{P1: 0x3ABCD, P2: 0xE1234, P3: 0x5F00D}
	got := p.registers(byte(RDiv8) << 4)
	want := [8]byte{0xF0, 0x0D, 0x33, 0xAB, 0xCD, 0x5E, 0x12, 0x34}
	if got != want {
		t.Errorf("registers() = % x, want % x", got, want)
	}
}
