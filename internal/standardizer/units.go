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

import "strings"

// applyUnitFix lines up unit designators so that 101-A, A-101, #A101 and
// "UNIT 101A" all end in the same 101A token, then joins the words with no
// separator.
//
// The second pass picks up the lone character a first pass can leave at the
// end of the address.
func applyUnitFix(address string) string {
	words := strings.Split(address, " ")
	words = unitPass(words)
	words = unitPass(words)
	return strings.Join(words, "")
}

// unitPass merges every single-character word onto the front of the word that
// follows it and reorders the others with unitFix. A single character with no
// word after it is kept as the last word.
func unitPass(words []string) []string {
	out := make([]string, 0, len(words))
	carry := ""
	for _, word := range words {
		word = carry + word
		carry = ""
		if len(word) == 1 {
			carry = word
			continue
		}
		out = append(out, unitFix(word))
	}
	if carry != "" {
		out = append(out, carry)
	}
	return out
}

// unitFix moves every digit of a word ahead of its other characters, keeping
// the relative order inside both groups: A101 -> 101A, 15B2 -> 152B.
func unitFix(unit string) string {
	var digits, rest strings.Builder
	for i := 0; i < len(unit); i++ {
		c := unit[i]
		if c >= '0' && c <= '9' {
			digits.WriteByte(c)
		} else {
			rest.WriteByte(c)
		}
	}
	return digits.String() + rest.String()
}
