// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package edit

import "github.com/mattn/go-runewidth"

// CursorMetrics is the derived position of the caret.
// Line and Column are computed by the session from the buffer
// (Column counts bytes from the start of the line);
// the pixel fields come from the session's [Layout].
type CursorMetrics struct {
	Line       int
	Column     int
	X          float64
	Y          float64
	LineHeight float64
}

// FontConfig is the display configuration the session carries
// for its layout collaborator.
type FontConfig struct {
	Family     string
	Size       float64
	LineHeight float64
	CellWidth  float64
}

// DefaultFontConfig returns the font configuration used
// when the host supplies none.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		Family:     "monospace",
		Size:       14,
		LineHeight: 20,
		CellWidth:  8,
	}
}

// Layout computes caret pixel geometry.
// Pixel positions depend on font metrics the core does not have,
// so the host's text-layout collaborator implements this interface;
// [MonospaceLayout] is the built-in fallback.
type Layout interface {
	// CaretPosition returns the caret's pixel position and line height
	// for a cursor sitting at the given byte column of lineText,
	// on the given 0-based line.
	CaretPosition(lineText []byte, column, line int, font FontConfig) (x, y, lineHeight float64)
}

// MonospaceLayout approximates caret geometry for a fixed-width font:
// every terminal cell is FontConfig.CellWidth pixels wide.
type MonospaceLayout struct{}

// CaretPosition implements [Layout].
func (MonospaceLayout) CaretPosition(lineText []byte, column, line int, font FontConfig) (x, y, lineHeight float64) {
	if column > len(lineText) {
		column = len(lineText)
	}
	cells := runewidth.StringWidth(string(lineText[:column]))
	return float64(cells) * font.CellWidth, float64(line) * font.LineHeight, font.LineHeight
}
