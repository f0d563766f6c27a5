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

/*
NearestFraction finds the best approximation c/d ≈ a/b with d <= maxDenominator.

It returns c, d and the error a/b - c/d as floating point.

The method builds terms of a continued fraction until the denominator of the
rational value would grow past the limit.

The Si5351 takes each divider as a + b/c with c < 2^20. A ratio typed as a
decimal such as 28.85301 needs 10^5 as denominator, and a ratio computed by
the caller from measured frequencies may need far more digits than that.
Clamping the denominator to 2^20-1 and rounding the numerator throws away most
of the available precision, while the nearest fraction within the same limit
is typically good to better than one part in 10^12.
*/
func NearestFraction(a, b, maxDenominator uint64) (c, d uint64, eps float64) {
	c, d = continuedFraction(a, b, 0, 1, maxDenominator)
	eps = float64(a)/float64(b) - float64(c)/float64(d)
	return c, d, eps
}

/*
continuedFraction approximates a/b by a continued fraction and returns its
rational value as two integers.

Any rational a/b can be written as

	cf(a, b) = floor(a/b) + rem(a/b) / b

and the second term inverted, giving

	cf(a, b) = floor(a/b) + 1 / cf(b, rem(a/b))

The convergents are the best rational approximations for their denominator.
Recursion stops when the next denominator would exceed maxDenominator. To know
that, the two previous denominators e and f are carried along, starting at 0
and 1.
*/
func continuedFraction(a, b, e, f, maxDenominator uint64) (c, d uint64) {
	term := a / b
	denom := f + term*e
	if denom > maxDenominator {
		return 1, 0
	}
	rem := a - term*b
	if rem == 0 {
		return term, 1
	}
	// a/b = term + 1/(cx/dx) = (term*cx + dx) / cx
	cx, dx := continuedFraction(b, rem, denom, e, maxDenominator)
	return term*cx + dx, cx
}
