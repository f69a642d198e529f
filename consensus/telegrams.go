package consensus

import "github.com/hughdickinson/DCWConsensus/models"

// AssignTelegrams walks boxes in order and hands the next telegram to every box
// marked more than once. Compound boxes left over when telegrams run out get
// no telegram; both a shortage and unconsumed telegrams are reported.
func AssignTelegrams(boxes []models.SubjectBox, telegrams []models.Telegram) ([]Box, []Warning) {
	var warnings []Warning
	out := make([]Box, 0, len(boxes))
	next := 0
	for _, b := range boxes {
		box := Box{SubjectBox: b}
		if b.NumBoxesMarked > 1 {
			if next < len(telegrams) {
				box.TelegramData = telegrams[next]
				next++
			} else {
				warnings = append(warnings, boxWarning(WarnTelegramShortage, b.BestBoxIndex,
					"box %d is marked %d times but all %d telegrams are assigned", b.BestBoxIndex, b.NumBoxesMarked, len(telegrams)))
			}
		}
		out = append(out, box)
	}
	if next < len(telegrams) {
		warnings = append(warnings, boxWarning(WarnTelegramSurplus, -1,
			"%d of %d telegrams have no compound box", len(telegrams)-next, len(telegrams)))
	}
	return out, warnings
}
