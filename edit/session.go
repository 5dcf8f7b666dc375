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

// Package edit maintains the live editing state of one markdown document:
// a gap-buffer text store, the cursor, and the parsed block tree,
// kept consistent by a full re-parse after every mutation.
//
// A Session is single-threaded and call-and-return:
// every operation, including the re-parse it triggers,
// runs to completion before returning,
// and a Session must never be shared between goroutines.
package edit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/rivo/uniseg"
	"go4.org/bytereplacer"
	"golang.org/x/text/unicode/norm"
	"zombiezen.com/go/mdedit"
)

// nulScrubber mirrors the parser's NUL replacement,
// so the buffer and the published source never diverge in length.
var nulScrubber = bytereplacer.New("\x00", "�")

// Errors returned by session operations.
var (
	ErrInvalidUTF8 = errors.New("inserted text is not valid UTF-8")
	ErrClosed      = errors.New("edit session is closed")
	ErrNoPath      = errors.New("edit session has no file path")
)

// A Session owns the mutable text of one open markdown document
// and keeps the parsed tree, the active block, and the cursor metrics
// consistent with it across edits.
type Session struct {
	doc    *mdedit.Document
	buf    *GapBuffer
	path   string
	cursor int
	anchor int // selection anchor offset, -1 when there is no selection
	active mdedit.BlockID

	metrics CursorMetrics
	font    FontConfig
	layout  Layout
	logger  *log.Logger
	closed  bool
}

// An Option configures a Session.
type Option func(*Session)

// WithFont sets the session's display configuration.
func WithFont(font FontConfig) Option {
	return func(s *Session) { s.font = font }
}

// WithLayout sets the layout collaborator that computes caret pixels.
func WithLayout(layout Layout) Option {
	return func(s *Session) { s.layout = layout }
}

// WithLogger sets the logger for edit diagnostics.
// By default the session logs nothing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession starts an edit session over the given markdown text.
// The text is copied; the session owns its buffer.
func NewSession(source []byte, opts ...Option) *Session {
	s := &Session{
		anchor: -1,
		font:   DefaultFontConfig(),
		layout: MonospaceLayout{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = mdedit.Parse(source)
	// Seed the buffer from the parsed source, not the input:
	// the parser may have scrubbed bytes the tree's spans must agree with.
	s.buf = NewGapBuffer(s.doc.Source())
	s.refresh()
	return s
}

// OpenSession starts an edit session over the contents of a file.
// An unreadable path is an error; no session is created.
func OpenSession(path string, opts ...Option) (*Session, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open edit session: %w", err)
	}
	s := NewSession(source, opts...)
	s.path = path
	return s, nil
}

// Close frees the session's document, arena, and buffer together.
// Every tree pointer and span obtained from the session is invalid
// after Close. Close is idempotent and a nil session is a no-op.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.doc.Close()
	s.buf = nil
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s == nil || s.closed
}

// InsertText validates and inserts text at the cursor,
// advancing the cursor past it and re-parsing the buffer.
// Invalid UTF-8 is rejected before anything mutates.
// Inserted text is normalized to NFC,
// matching what display frontends hand back for composed input,
// and NUL bytes are replaced with U+FFFD the way the parser replaces them.
func (s *Session) InsertText(text string) error {
	if s.closed {
		return ErrClosed
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	t := norm.NFC.Bytes([]byte(text))
	if bytes.IndexByte(t, 0) >= 0 {
		t = nulScrubber.Replace(t)
	}
	if len(t) == 0 {
		return nil
	}
	s.deleteSelection()
	s.buf.Insert(s.cursor, t)
	s.cursor += len(t)
	s.reparse()
	return nil
}

// HandleKey translates a key event into an edit command and applies it.
// Unmapped keys are a no-op.
// Motion commands never leave the cursor inside a multi-byte code point.
func (s *Session) HandleKey(key Key, mods Modifier) {
	if s.closed {
		return
	}
	cmd := Translate(key, mods)
	switch {
	case cmd == CommandNone:
		return

	case cmd.IsMotion():
		target := s.motionTarget(cmd)
		if mods.Has(ModShift) {
			if s.anchor < 0 {
				s.anchor = s.cursor
			}
		} else {
			s.anchor = -1
		}
		s.cursor = target
		s.refresh()

	case cmd == CommandDeleteBackward:
		if s.deleteSelection() {
			s.reparse()
			return
		}
		start := s.prevBoundary(s.cursor)
		if start == s.cursor {
			return
		}
		s.buf.Delete(start, s.cursor-start)
		s.cursor = start
		s.reparse()

	case cmd == CommandDeleteForward:
		if s.deleteSelection() {
			s.reparse()
			return
		}
		end := s.nextBoundary(s.cursor)
		if end == s.cursor {
			return
		}
		s.buf.Delete(s.cursor, end-s.cursor)
		s.reparse()

	case cmd == CommandInsertNewline:
		s.deleteSelection()
		s.buf.Insert(s.cursor, []byte{'\n'})
		s.cursor++
		s.reparse()

	case cmd == CommandSave:
		if err := s.Save(); err != nil {
			s.logger.Error("save failed", "path", s.path, "error", err)
		}
	}
}

// SetCursor places the cursor at the given byte offset.
// Out-of-range offsets are clamped, never an error,
// and the offset snaps to the nearest code-point boundary at or before it.
// The active block and cursor metrics are recomputed.
func (s *Session) SetCursor(offset int) {
	if s.closed {
		return
	}
	s.anchor = -1
	s.cursor = offset
	s.refresh()
}

// AcceptHitTest feeds a hit-test result from the rendering collaborator
// into the cursor. The collaborator reports 0 on failure,
// which lands the cursor at the start of the document.
func (s *Session) AcceptHitTest(offset int) {
	s.SetCursor(offset)
}

// Save writes the buffer to the session's file path as plain UTF-8 markdown.
func (s *Session) Save() error {
	if s.closed {
		return ErrClosed
	}
	if s.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(s.path, s.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save edit session: %w", err)
	}
	return nil
}

// SaveAs writes the buffer to path and makes it the session's file path.
func (s *Session) SaveAs(path string) error {
	if s.closed {
		return ErrClosed
	}
	s.path = path
	return s.Save()
}

// Frame accessors for the rendering collaborator.
// Returned trees, slices, and spans are invalidated by the next mutation
// and must not be retained across it.

// Document returns the session's document state.
func (s *Session) Document() *mdedit.Document {
	return s.doc
}

// Root returns the root of the current block tree, nil after Close.
func (s *Session) Root() *mdedit.Block {
	return s.doc.Root()
}

// Text returns the current text, valid until the next mutation.
func (s *Session) Text() []byte {
	return s.doc.Source()
}

// Len returns the buffer length in bytes.
func (s *Session) Len() int {
	if s.closed {
		return 0
	}
	return s.buf.Len()
}

// Cursor returns the cursor's absolute byte offset.
func (s *Session) Cursor() int {
	return s.cursor
}

// ActiveBlock returns the ID of the block the cursor sits in,
// or [mdedit.NoBlock] at document top level.
func (s *Session) ActiveBlock() mdedit.BlockID {
	return s.active
}

// Metrics returns the current cursor metrics.
func (s *Session) Metrics() CursorMetrics {
	return s.metrics
}

// Font returns the session's display configuration.
func (s *Session) Font() FontConfig {
	return s.font
}

// Path returns the file path backing the session,
// or "" for a session created from bytes.
func (s *Session) Path() string {
	return s.path
}

// Selection returns the selected byte range,
// or ok == false when nothing is selected.
func (s *Session) Selection() (start, end int, ok bool) {
	if s.closed || s.anchor < 0 || s.anchor == s.cursor {
		return 0, 0, false
	}
	if s.anchor < s.cursor {
		return s.anchor, s.cursor, true
	}
	return s.cursor, s.anchor, true
}

// deleteSelection removes the selected range, if any,
// leaving the cursor at its start.
// It reports whether anything was removed;
// the caller is responsible for re-parsing.
func (s *Session) deleteSelection() bool {
	start, end, ok := s.Selection()
	s.anchor = -1
	if !ok {
		return false
	}
	s.buf.Delete(start, end-start)
	s.cursor = start
	return true
}

// reparse publishes the mutated buffer into the document:
// the whole text is re-parsed and the cursor re-anchored by position.
func (s *Session) reparse() {
	text := s.buf.Bytes()
	s.doc.Update(text)
	s.refresh()
	s.logger.Debug("reparsed buffer",
		"bytes", len(text),
		"generation", s.doc.Generation(),
		"activeBlock", s.active)
}

// refresh clamps and snaps the cursor to a code-point boundary,
// then re-anchors the active block and recomputes metrics.
// The order is fixed: clamp and snap first, re-anchor after.
func (s *Session) refresh() {
	s.cursor = s.snap(s.cursor)
	s.active = blockID(s.doc.BlockAt(s.cursor))
	s.computeMetrics()
}

// snap clamps off into [0, Len] and moves it back
// to the start of the code point it lands in.
func (s *Session) snap(off int) int {
	if off < 0 {
		return 0
	}
	if n := s.buf.Len(); off > n {
		return n
	}
	for off > 0 && off < s.buf.Len() && isContinuationByte(s.buf.ByteAt(off)) {
		off--
	}
	return off
}

func isContinuationByte(b byte) bool {
	return b&0xC0 == 0x80
}

func blockID(b *mdedit.Block) mdedit.BlockID {
	if b == nil {
		return mdedit.NoBlock
	}
	return b.ID()
}

// motionTarget computes the destination offset of a motion command.
// Horizontal motion steps over grapheme clusters, not bytes,
// so combined characters move as units.
func (s *Session) motionTarget(cmd Command) int {
	text := s.Text()
	switch cmd {
	case CommandMoveLeft:
		return s.prevBoundary(s.cursor)
	case CommandMoveRight:
		return s.nextBoundary(s.cursor)
	case CommandMoveUp:
		return verticalTarget(text, s.cursor, -1)
	case CommandMoveDown:
		return verticalTarget(text, s.cursor, +1)
	case CommandMoveWordLeft:
		return s.prevWord(s.cursor)
	case CommandMoveWordRight:
		return s.nextWord(s.cursor)
	case CommandMoveLineStart:
		return lineStart(text, s.cursor)
	case CommandMoveLineEnd:
		return lineEnd(text, s.cursor)
	case CommandMoveDocStart:
		return 0
	case CommandMoveDocEnd:
		return len(text)
	}
	return s.cursor
}

// prevBoundary returns the grapheme-cluster boundary before off,
// or off when already at the start of the buffer.
func (s *Session) prevBoundary(off int) int {
	if off <= 0 {
		return 0
	}
	text := s.Text()
	ls := lineStart(text, off)
	if off == ls {
		// Cross to the previous line, over its newline byte.
		return off - 1
	}
	prev := ls
	for rest, state := text[ls:off], -1; len(rest) > 0; {
		var cluster []byte
		cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
		if len(rest) == 0 {
			break
		}
		prev += len(cluster)
	}
	return prev
}

// nextBoundary returns the grapheme-cluster boundary after off,
// or off when already at the end of the buffer.
func (s *Session) nextBoundary(off int) int {
	text := s.Text()
	if off >= len(text) {
		return len(text)
	}
	if text[off] == '\n' {
		return off + 1
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(text[off:], -1)
	return off + len(cluster)
}

// nextWord returns the offset past the end of the next word segment,
// skipping any whitespace segments before it.
func (s *Session) nextWord(off int) int {
	text := s.Text()
	state := -1
	for off < len(text) {
		var word []byte
		word, _, state = uniseg.FirstWord(text[off:], state)
		if len(word) == 0 {
			break
		}
		off += len(word)
		if !isSpaceSegment(word) {
			break
		}
	}
	return off
}

// prevWord returns the start of the word segment before off.
func (s *Session) prevWord(off int) int {
	text := s.Text()
	ls := lineStart(text, off)
	if off == ls {
		if off == 0 {
			return 0
		}
		return off - 1
	}
	last := ls
	pos := ls
	for rest, state := text[ls:off], -1; len(rest) > 0; {
		var word []byte
		word, rest, state = uniseg.FirstWord(rest, state)
		if len(word) == 0 {
			break
		}
		if !isSpaceSegment(word) {
			last = pos
		}
		pos += len(word)
	}
	return last
}

func isSpaceSegment(seg []byte) bool {
	for _, b := range seg {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

// verticalTarget moves the cursor one line up or down,
// preserving the byte column where the target line is long enough
// and snapping back to a code-point boundary.
func verticalTarget(text []byte, cursor, dir int) int {
	ls := lineStart(text, cursor)
	col := cursor - ls
	var targetStart int
	if dir < 0 {
		if ls == 0 {
			return cursor
		}
		targetStart = lineStart(text, ls-1)
	} else {
		le := lineEnd(text, cursor)
		if le >= len(text) {
			return cursor
		}
		targetStart = le + 1
	}
	off := targetStart + col
	if le := lineEnd(text, targetStart); off > le {
		off = le
	}
	for off > targetStart && off < len(text) && isContinuationByte(text[off]) {
		off--
	}
	return off
}

// lineStart returns the offset just after the newline preceding off.
func lineStart(text []byte, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if i := bytes.LastIndexByte(text[:off], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// lineEnd returns the offset of the newline terminating off's line,
// or len(text) on the last line.
func lineEnd(text []byte, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if i := bytes.IndexByte(text[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(text)
}

// computeMetrics derives line/column by scanning for line breaks
// and asks the layout collaborator for pixel geometry.
func (s *Session) computeMetrics() {
	text := s.Text()
	cursor := s.cursor
	if cursor > len(text) {
		cursor = len(text)
	}
	line := bytes.Count(text[:cursor], []byte{'\n'})
	ls := lineStart(text, cursor)
	le := lineEnd(text, cursor)
	col := cursor - ls
	x, y, h := s.layout.CaretPosition(text[ls:le], col, line, s.font)
	s.metrics = CursorMetrics{
		Line:       line,
		Column:     col,
		X:          x,
		Y:          y,
		LineHeight: h,
	}
}
