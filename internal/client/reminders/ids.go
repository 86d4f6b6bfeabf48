package reminders

import (
	"fmt"
	"strconv"
)

// Axis names the card date a group of reminders is anchored to.
type Axis string

const (
	AxisDue Axis = "due"
	AxisCut Axis = "cut"
)

// Offsets are the days before the axis date at which reminders fire.
var Offsets = [3]int{3, 1, 0}

// ID returns the notification id for one reminder.
func ID(cardID string, axis Axis, offset int) string {
	return fmt.Sprintf("%s_%s_%s", cardID, axis, strconv.Itoa(offset))
}

// IDs returns the three notification ids of an axis, in Offsets order.
func IDs(cardID string, axis Axis) []string {
	ids := make([]string, 0, len(Offsets))
	for _, off := range Offsets {
		ids = append(ids, ID(cardID, axis, off))
	}
	return ids
}

// CardIDs returns all six notification ids of a card.
func CardIDs(cardID string) []string {
	return append(IDs(cardID, AxisDue), IDs(cardID, AxisCut)...)
}
