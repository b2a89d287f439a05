package picker

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches ANSI escape sequences:
//   - CSI sequences: ESC [ ... final_byte  (covers SGR like \x1b[31m)
//   - OSC sequences: ESC ] ... (ST | BEL)
//   - Charset sequences: ESC ( B, ESC ) B, etc.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`)`)

// StripANSI removes ANSI escape sequences from a string. Catalog
// titles come from user-editable YAML and must not smuggle terminal
// control bytes into the picker.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// Truncate returns s shortened to maxWidth display columns, appending
// an ellipsis when anything was cut. It is display-width-aware,
// correctly handling CJK characters and emoji that occupy two columns.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	if maxWidth == 1 {
		return ellipsis
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth-1 {
			return s[:i] + ellipsis
		}
		w += rw
	}
	return s
}
