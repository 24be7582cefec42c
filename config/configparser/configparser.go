package configparser

/*
 * Allegrex - Configuration file parser
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
	"bufio"
	"fmt"
	"os"
	"strings"
)

/*
 * One directive per line:
 *
 *     # comment
 *     MEMSIZE 32M
 *     DEBUG CHECKS
 *     BREAK 8804000
 *
 * Packages register the keywords they own in init; loading an
 * unregistered keyword is an error so typos surface immediately.
 */

type handlerKind int

const (
	kindSwitch handlerKind = iota // Keyword alone
	kindOption                    // Keyword plus one value
)

type handler struct {
	kind handlerKind
	fn   func(value string) error
}

var handlers = map[string]handler{}

var lineNumber int

// RegisterSwitch installs a keyword taking no value.
func RegisterSwitch(name string, fn func(value string) error) {
	handlers[strings.ToUpper(name)] = handler{kind: kindSwitch, fn: fn}
}

// RegisterOption installs a keyword taking one value.
func RegisterOption(name string, fn func(value string) error) {
	handlers[strings.ToUpper(name)] = handler{kind: kindOption, fn: fn}
}

// LoadConfigFile reads and applies a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	lineNumber = 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		if err := parseLine(scanner.Text()); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNumber, err)
		}
	}
	return scanner.Err()
}

func parseLine(text string) error {
	if idx := strings.IndexByte(text, '#'); idx >= 0 {
		text = text[:idx]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	keyword := strings.ToUpper(fields[0])
	h, ok := handlers[keyword]
	if !ok {
		return fmt.Errorf("unknown keyword: %s", fields[0])
	}

	switch h.kind {
	case kindSwitch:
		if len(fields) != 1 {
			return fmt.Errorf("%s takes no value", keyword)
		}
		return h.fn("")
	default:
		if len(fields) != 2 {
			return fmt.Errorf("%s takes one value", keyword)
		}
		return h.fn(fields[1])
	}
}
