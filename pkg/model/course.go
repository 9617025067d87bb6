package model

import "strings"

// Course is one section to be placed. Immutable after load.
//
// ForceRoom and ForceTimeSlot carry the optional forcing annotations from
// the courses file; an empty string means the section is unconstrained.
type Course struct {
	ID            string `csv:"Course" validate:"required"`
	Instructor    string `csv:"Instructor" validate:"required"`
	Enrollment    int    `csv:"Enrollment" validate:"min=0"`
	SlotType      string `csv:"Slot Type"`
	RoomType      string `csv:"Room Type"`
	ForceRoom     string `csv:"Force Room"`
	ForceTimeSlot string `csv:"Force Time Slot"`
}

// Root strips the trailing section suffix from a course identifier:
// "ASEN 3501-010" and "ASEN 3501-011" share the root "ASEN 3501".
// Identifiers without a dash are their own root.
func (c Course) Root() string {
	parts := strings.Split(c.ID, "-")
	if len(parts) <= 1 {
		return c.ID
	}
	return strings.Join(parts[:len(parts)-1], "-")
}
