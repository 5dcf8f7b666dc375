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

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		key  Key
		mods Modifier
		want Command
	}{
		{KeyLeft, ModNone, CommandMoveLeft},
		{KeyRight, ModNone, CommandMoveRight},
		{KeyLeft, ModCtrl, CommandMoveWordLeft},
		{KeyRight, ModAlt, CommandMoveWordRight},
		{KeyLeft, ModShift, CommandMoveLeft},
		{KeyUp, ModNone, CommandMoveUp},
		{KeyDown, ModNone, CommandMoveDown},
		{KeyHome, ModNone, CommandMoveLineStart},
		{KeyEnd, ModNone, CommandMoveLineEnd},
		{KeyHome, ModCtrl, CommandMoveDocStart},
		{KeyEnd, ModCtrl, CommandMoveDocEnd},
		{KeyBackspace, ModNone, CommandDeleteBackward},
		{KeyDelete, ModNone, CommandDeleteForward},
		{KeyEnter, ModNone, CommandInsertNewline},
		{Key('s'), ModCtrl, CommandSave},
		{Key('S'), ModMeta, CommandSave},
		{Key('s'), ModNone, CommandNone},
		{Key('a'), ModCtrl, CommandNone},
		{KeyEscape, ModNone, CommandNone},
		{KeyTab, ModNone, CommandNone},
		{KeyPageUp, ModNone, CommandNone},
	}
	for _, test := range tests {
		if got := Translate(test.key, test.mods); got != test.want {
			t.Errorf("Translate(%#x, %#x) = %d; want %d", test.key, test.mods, got, test.want)
		}
	}
}

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("Has() = false for a set modifier")
	}
	if m.Has(ModAlt) || m.Has(ModMeta) {
		t.Error("Has() = true for an unset modifier")
	}
}

func TestCommandIsMotion(t *testing.T) {
	motions := []Command{
		CommandMoveLeft, CommandMoveRight, CommandMoveUp, CommandMoveDown,
		CommandMoveWordLeft, CommandMoveWordRight,
		CommandMoveLineStart, CommandMoveLineEnd,
		CommandMoveDocStart, CommandMoveDocEnd,
	}
	for _, c := range motions {
		if !c.IsMotion() {
			t.Errorf("Command(%d).IsMotion() = false; want true", c)
		}
	}
	others := []Command{
		CommandNone, CommandInsertNewline,
		CommandDeleteBackward, CommandDeleteForward, CommandSave,
	}
	for _, c := range others {
		if c.IsMotion() {
			t.Errorf("Command(%d).IsMotion() = true; want false", c)
		}
	}
}
