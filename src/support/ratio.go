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

package support

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDenominator is the largest fraction denominator the Si5351 accepts.
const MaxDenominator = 1<<20 - 1

// Ratio is a divider or multiplier of the form A + B/C.
type Ratio struct {
	A, B, C uint32
}

// Integer reports whether the ratio has no fractional part.
func (r Ratio) Integer() bool {
	return r.B == 0
}

func (r Ratio) Float() float64 {
	if r.C == 0 {
		return float64(r.A)
	}
	return float64(r.A) + float64(r.B)/float64(r.C)
}

func (r Ratio) String() string {
	if r.B == 0 {
		return strconv.FormatUint(uint64(r.A), 10)
	}
	return fmt.Sprintf("%d %d/%d", r.A, r.B, r.C)
}

/*
ParseRatio reads a ratio as typed on a command line. All of these are
accepted

	36
	36.25
	36 1/3
	36+1/3
	1/3

A decimal or a fraction whose denominator is larger than maxDenominator is
replaced by the nearest fraction that fits. A zero maxDenominator means
MaxDenominator.
*/
func ParseRatio(s string, maxDenominator uint32) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ratio{}, errors.New("ParseRatio: empty ratio")
	}
	if maxDenominator == 0 {
		maxDenominator = MaxDenominator
	}

	whole, frac := s, ""
	if i := strings.IndexAny(s, " +"); i >= 0 {
		whole, frac = s[:i], strings.TrimSpace(s[i+1:])
	} else if strings.Contains(s, "/") {
		whole, frac = "0", s
	}

	if frac == "" {
		if w, digits, ok := strings.Cut(whole, "."); ok {
			return parseDecimal(w, digits, maxDenominator)
		}
		a, err := parseUint32(whole)
		if err != nil {
			return Ratio{}, err
		}
		return Ratio{A: a, C: 1}, nil
	}

	a, err := parseUint32(whole)
	if err != nil {
		return Ratio{}, err
	}
	num, den, ok := strings.Cut(frac, "/")
	if !ok {
		return Ratio{}, fmt.Errorf("ParseRatio: %q has no fraction", s)
	}
	b, err := parseUint32(num)
	if err != nil {
		return Ratio{}, err
	}
	c, err := parseUint32(den)
	if err != nil {
		return Ratio{}, err
	}
	if c == 0 {
		return Ratio{}, fmt.Errorf("ParseRatio: zero denominator in %q", s)
	}
	return reduce(a, uint64(b), uint64(c), maxDenominator), nil
}

func parseDecimal(whole, digits string, maxDenominator uint32) (Ratio, error) {
	if whole == "" {
		whole = "0"
	}
	a, err := parseUint32(whole)
	if err != nil {
		return Ratio{}, err
	}
	if len(digits) == 0 || len(digits) > 15 {
		return Ratio{}, fmt.Errorf("ParseRatio: bad decimal fraction %q", digits)
	}
	b, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("ParseRatio: %w", err)
	}
	c := uint64(1)
	for range digits {
		c *= 10
	}
	return reduce(a, b, c, maxDenominator), nil
}

// reduce normalizes a + b/c to lowest terms with c <= maxDenominator.
func reduce(a uint32, b, c uint64, maxDenominator uint32) Ratio {
	a += uint32(b / c)
	b %= c
	if b == 0 {
		return Ratio{A: a, C: 1}
	}
	g := gcd(b, c)
	b, c = b/g, c/g
	if c > uint64(maxDenominator) {
		b, c, _ = NearestFraction(b, c, uint64(maxDenominator))
		a += uint32(b / c)
		b %= c
		if b == 0 {
			return Ratio{A: a, C: 1}
		}
	}
	return Ratio{A: a, B: uint32(b), C: uint32(c)}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("ParseRatio: %w", err)
	}
	return uint32(v), nil
}

// OutputFrequency is the frequency in Hz at an output fed by a PLL running
// at vco Hz through the multisynth ratio ms and an R divider of rdiv.
func OutputFrequency(vco float64, ms Ratio, rdiv uint32) float64 {
	if rdiv == 0 {
		rdiv = 1
	}
	return vco / ms.Float() / float64(rdiv)
}
