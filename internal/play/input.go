package play

import (
	"github.com/gdamore/tcell/v2"

	"sneaky/internal/geo"
)

// Intent is what a key press asks for, before it is turned into actions.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentMoveN
	IntentMoveS
	IntentMoveE
	IntentMoveW
	IntentMoveNE
	IntentMoveNW
	IntentMoveSE
	IntentMoveSW
	IntentWait
	IntentPickup
	IntentInventory
	IntentDescend
	IntentCast
	IntentWriteRune
	IntentLevelUp
	IntentConfirm
	IntentNextTarget
	IntentCancel
	IntentQuit
)

// keyToIntent maps a tcell key event to an intent.
func keyToIntent(ev *tcell.EventKey) Intent {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return IntentMoveN
	case tcell.KeyDown:
		return IntentMoveS
	case tcell.KeyRight:
		return IntentMoveE
	case tcell.KeyLeft:
		return IntentMoveW
	case tcell.KeyEnter:
		return IntentConfirm
	case tcell.KeyTab:
		return IntentNextTarget
	case tcell.KeyEscape:
		return IntentCancel
	case tcell.KeyRune:
	default:
		return IntentNone
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k':
		return IntentMoveN
	case 'j':
		return IntentMoveS
	case 'l':
		return IntentMoveE
	case 'h':
		return IntentMoveW
	case 'y':
		return IntentMoveNW
	case 'u':
		return IntentMoveNE
	case 'b':
		return IntentMoveSW
	case 'n':
		return IntentMoveSE
	case '.':
		return IntentWait
	case ',':
		return IntentPickup
	case 'i':
		return IntentInventory
	case '>':
		return IntentDescend
	case 'z':
		return IntentCast
	case 'r':
		return IntentWriteRune
	case 'p':
		return IntentLevelUp
	case 'q', 'Q':
		return IntentQuit
	}
	return IntentNone
}

// intentToDelta converts a movement intent to a direction.
func intentToDelta(i Intent) (geo.Point, bool) {
	switch i {
	case IntentMoveN:
		return geo.Pt(0, -1), true
	case IntentMoveS:
		return geo.Pt(0, 1), true
	case IntentMoveE:
		return geo.Pt(1, 0), true
	case IntentMoveW:
		return geo.Pt(-1, 0), true
	case IntentMoveNE:
		return geo.Pt(1, -1), true
	case IntentMoveNW:
		return geo.Pt(-1, -1), true
	case IntentMoveSE:
		return geo.Pt(1, 1), true
	case IntentMoveSW:
		return geo.Pt(-1, 1), true
	}
	return geo.Point{}, false
}

// menuIndex turns a menu letter into a list index.
func menuIndex(ev *tcell.EventKey, n int) (int, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	i := int(ev.Rune() - 'a')
	return i, i >= 0 && i < n
}

func menuLetter(i int) string {
	return string(rune('a' + i))
}
