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

/*
Params holds the three packed fields that encode a divider ratio a + b/c in
the Si5351 register format (see AN619).

	P1[17:0] = 128*a + floor(128*b/c) - 512
	P2[19:0] = 128*b - c*floor(128*b/c)
	P3[19:0] = c

The floor is taken with integer division so there is no rounding error at any
point of the input domain.
*/
type Params struct {
	P1, P2, P3 uint32
}

// PLLParams computes the feedback multisynth fields for fVCO = fXTAL * (mult + num/denom).
// The caller must keep mult in 15..90 and num, denom in the 20-bit range.
func PLLParams(mult uint8, num, denom uint32) Params {
	return fractional(uint32(mult), num, denom)
}

// MultisynthParams computes the output multisynth fields for fOUT = fVCO / (div + num/denom).
func MultisynthParams(div, num, denom uint32) Params {
	if num != 0 && denom == 1 {
		return Params{
			P1: 128*div + 128*num - 512,
			P2: 128*num - 128,
			P3: 1,
		}
	}
	return fractional(div, num, denom)
}

func fractional(a, b, c uint32) Params {
	if b == 0 {
		// integer mode
		return Params{P1: 128*a - 512, P2: 0, P3: c}
	}
	f := 128 * b / c
	return Params{
		P1: 128*a + f - 512,
		P2: 128*b - c*f,
		P3: c,
	}
}

// registers lays the fields out as the 8 bytes of a parameter window. The
// rdiv bits share the third byte with P1[17:16].
func (p Params) registers(rdiv uint8) [8]byte {
	return [8]byte{
		byte(p.P3 >> 8),
		byte(p.P3),
		byte(p.P1>>16)&0x03 | rdiv&rdivMask,
		byte(p.P1 >> 8),
		byte(p.P1),
		byte(p.P3>>12)&0xF0 | byte(p.P2>>16)&0x0F,
		byte(p.P2 >> 8),
		byte(p.P2),
	}
}
