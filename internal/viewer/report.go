package viewer

import (
	"fmt"
	"strings"

	"github.com/Garsondee/tactics-core/internal/board"
)

// reportEntries is how many journal lines the report carries.
const reportEntries = 20

// Report renders the board as the viewer currently shows it, followed by
// the selection and the tail of the journal.
func (v *Viewer) Report() string {
	var sb strings.Builder
	ov := board.Overlay{Area: v.area, Path: v.preview.Tiles}
	if v.showFog {
		seen := v.seen
		ov.Visible = &seen
	}
	fmt.Fprintf(&sb, "tick %d  selected %s\n", v.engine.CurrentTick(), v.selectedLabel())
	if v.showFog {
		fmt.Fprintf(&sb, "fog for team %d\n", v.fogTeam)
	}
	sb.WriteString(board.RenderEngine(v.engine, ov))

	entries := v.engine.Journal().Entries()
	if n := len(entries); n > reportEntries {
		entries = entries[n-reportEntries:]
	}
	if len(entries) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
