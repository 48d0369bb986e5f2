package loop

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/object"
)

// TitleArt is the start screen banner (figlet "small" font).
var TitleArt = []string{
	` _____                  _     _  _           _           `,
	`|_   _|_ _ _ _ __ _ ___| |_  | || |_  _ _ _ | |_ ___ _ _ `,
	`  | |/ _' | '_/ _' / -_)  _| | __ | || | ' \|  _/ -_) '_|`,
	`  |_|\__,_|_| \__, \___|\__| |_||_|\_,_|_||_|\__\___|_|  `,
	`              |___/                                      `,
}

// ControlLines lists the key bindings.
var ControlLines = []string{
	"Mouse  . . . . . . Shoot",
	"SPACE  . . Start / Pause",
	"1 2 3  . . . .  Use item",
	"Ctrl+R . . . . . . Reset",
	"Q  . . . . . . . .  Quit",
}

// KindLegend describes the target kinds, one line each.
func KindLegend() []string {
	lines := make([]string, 0, object.KindCount)
	for k := object.Kind(0); k < object.KindCount; k++ {
		lines = append(lines, fmt.Sprintf("%c %-7s %3d pts", k.Glyph(), k, k.Points()))
	}
	return lines
}

// FormatTime renders whole seconds as m:ss.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// StatsLine is the first HUD row: stats and the live target count.
func StatsLine(snap game.Snapshot) string {
	st := snap.Stats
	return fmt.Sprintf("Score %-6d Level %-2d Hits %-4d Misses %-4d Accuracy %3d%% Targets %d/%-2d Time %s",
		st.Score, st.Level, st.Hits, st.Misses, st.Accuracy, len(snap.Targets), snap.MaxTargets, FormatTime(st.GameTime))
}

// ItemsLine is the second HUD row: inventory and active effects.
func ItemsLine(snap game.Snapshot) string {
	var b strings.Builder
	for k := game.ItemKind(0); k < game.ItemCount; k++ {
		fmt.Fprintf(&b, "[%d] %s x%-2d  ", int(k)+1, ItemName(k), snap.Items[k])
	}
	for k, e := range snap.Effects {
		if e.Active {
			fmt.Fprintf(&b, " %s %2ds", EffectName(game.EffectKind(k)), int(math.Ceil(e.Remaining.Seconds())))
		}
	}
	return b.String()
}

// StatusText is the centered prompt for states that wait on the player.
func StatusText(st game.State) string {
	switch st {
	case game.StateStopped:
		return ">>  Press SPACE to Start  <<"
	case game.StatePaused:
		return "PAUSED - press SPACE to resume"
	}
	return ""
}

// Fit pads or truncates s to exactly width terminal cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}

// TextWidth returns the number of terminal cells s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
