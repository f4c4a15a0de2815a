package ui

import "strings"

// taskBarWidth is the cell count of the task progress bar.
const taskBarWidth = 20

// TaskBar renders task progress as a fixed-width block bar, full blocks
// for done and light blocks for remaining. Empty when there are no tasks.
func TaskBar(done, total int) string {
	if total <= 0 {
		return ""
	}
	filled := min(taskBarWidth*done/total, taskBarWidth)
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", taskBarWidth-filled)
}
