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

// Key is a platform-independent key code.
// Printable keys use their Unicode value (for example Key('s'));
// special keys live above the Unicode private-use boundary.
type Key uint16

const (
	KeyNone Key = 0xE000 + iota

	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyTab

	// Arrow keys.
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Modifier is a bitmask of the modifier keys held during a key event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Command is an edit operation a key event translates to.
type Command uint8

const (
	// CommandNone is the no-op command for unmapped keys.
	CommandNone Command = iota

	CommandInsertNewline
	CommandDeleteBackward
	CommandDeleteForward

	CommandMoveLeft
	CommandMoveRight
	CommandMoveUp
	CommandMoveDown
	CommandMoveWordLeft
	CommandMoveWordRight
	CommandMoveLineStart
	CommandMoveLineEnd
	CommandMoveDocStart
	CommandMoveDocEnd

	CommandSave
)

// IsMotion reports whether the command moves the cursor
// without mutating the buffer.
// Motion commands extend the selection when Shift is held.
func (c Command) IsMotion() bool {
	return c >= CommandMoveLeft && c <= CommandMoveDocEnd
}

// Translate maps a key event to an edit command.
// Unmapped combinations yield [CommandNone].
// Shift is ignored here; the session inspects it separately
// to decide whether a motion extends the selection.
func Translate(key Key, mods Modifier) Command {
	word := mods.Has(ModCtrl) || mods.Has(ModAlt)
	switch key {
	case KeyLeft:
		if word {
			return CommandMoveWordLeft
		}
		return CommandMoveLeft
	case KeyRight:
		if word {
			return CommandMoveWordRight
		}
		return CommandMoveRight
	case KeyUp:
		return CommandMoveUp
	case KeyDown:
		return CommandMoveDown
	case KeyHome:
		if mods.Has(ModCtrl) {
			return CommandMoveDocStart
		}
		return CommandMoveLineStart
	case KeyEnd:
		if mods.Has(ModCtrl) {
			return CommandMoveDocEnd
		}
		return CommandMoveLineEnd
	case KeyBackspace:
		return CommandDeleteBackward
	case KeyDelete:
		return CommandDeleteForward
	case KeyEnter:
		return CommandInsertNewline
	case Key('s'), Key('S'):
		if mods.Has(ModCtrl) || mods.Has(ModMeta) {
			return CommandSave
		}
	}
	return CommandNone
}
