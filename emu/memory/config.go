package memory

/*
 * Allegrex - Memory size configuration
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"errors"
	"unicode"

	config "github.com/iota97/allegrex/config/configparser"
)

// Set size of memory from the MEMSIZE option. Accepts a number with
// an optional K or M multiplier.
func setMemSize(number string) error {
	size := 0
	multiplier := ' '
	for i, digit := range number {
		if !unicode.IsDigit(digit) {
			if i == len(number)-1 {
				multiplier = digit
				break
			}
			return errors.New("Mem size not a number: " + number)
		}
		size = (size * 10) + (int(digit) - '0')
	}

	switch multiplier {
	case 'k', 'K':
	case 'm', 'M':
		size *= 1024
	case ' ':
		// Bare numbers are bytes
		size /= 1024
	default:
		return errors.New("Invalid size multipler: " + string(multiplier))
	}

	if size < 1024 {
		size = 1024
	}
	SetSize(size)
	return nil
}

func init() {
	config.RegisterOption("MEMSIZE", setMemSize)
}
