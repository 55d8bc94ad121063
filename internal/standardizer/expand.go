// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package standardizer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	// ErrRangeTooLarge is returned when a range would expand past the configured maximum.
	ErrRangeTooLarge = eris.New("standardizer: range exceeds maximum expansion")
	// ErrInvalidRange is returned in strict mode when a range bound is not a number.
	ErrInvalidRange = eris.New("standardizer: invalid range bound")
)

// rangeDelimiters are tried in order against the first word of an address.
var rangeDelimiters = []string{"-", "/"}

// AddressSet is a set of canonical address keys.
type AddressSet map[string]struct{}

// Add inserts key into the set.
func (a AddressSet) Add(key string) {
	a[key] = struct{}{}
}

// Has reports whether key is in the set.
func (a AddressSet) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Len returns the number of keys.
func (a AddressSet) Len() int {
	return len(a)
}

// Sorted returns the keys in lexical order.
func (a AddressSet) Sorted() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExpandRange splits an address whose house number is a range or list into one
// key per number: "110-120 Mayberry Way" yields the keys for 110 through 120
// Mayberry Way. An address without a range yields its own key. A range whose
// low bound is above its high bound yields an empty set.
func (s *Standardizer) ExpandRange(raw string) (AddressSet, error) {
	for _, d := range rangeDelimiters {
		raw = strings.ReplaceAll(raw, d+" ", d)
		raw = strings.ReplaceAll(raw, " "+d, d)
	}

	set := make(AddressSet)
	words := strings.Split(raw, " ")
	first, rest := words[0], strings.Join(words[1:], " ")

	for _, d := range rangeDelimiters {
		if !strings.Contains(first, d) {
			continue
		}

		bounds := strings.Split(first, d)
		low, err := s.parseBound(bounds[0])
		if err != nil {
			return nil, err
		}
		high, err := s.parseBound(bounds[1])
		if err != nil {
			return nil, err
		}

		if high >= low && high-low >= int64(s.maxExpansion) {
			return nil, eris.Wrapf(ErrRangeTooLarge, "%q spans %d..%d, limit %d", first, low, high, s.maxExpansion)
		}

		for offset := int64(0); offset <= high-low; offset++ {
			set.Add(s.Normalize(strconv.FormatInt(low+offset, 10) + " " + rest))
		}
		return set, nil
	}

	set.Add(s.Normalize(raw))
	return set, nil
}

// parseBound reads a range bound. In lenient mode the leading digits are used
// and a bound without leading digits counts as 0, matching how legacy data was
// keyed. Strict mode accepts digits only.
func (s *Standardizer) parseBound(bound string) (int64, error) {
	n := 0
	for n < len(bound) && bound[n] >= '0' && bound[n] <= '9' {
		n++
	}

	if s.strictRanges && (n == 0 || n != len(bound)) {
		return 0, eris.Wrapf(ErrInvalidRange, "bound %q", bound)
	}
	if n == 0 {
		return 0, nil
	}

	value, err := strconv.ParseInt(bound[:n], 10, 64)
	if err != nil {
		// digits only, so this is an overflow
		return math.MaxInt64, nil
	}
	return value, nil
}
