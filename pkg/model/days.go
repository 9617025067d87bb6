package model

// Day is a single teaching day. Thursday uses the two-character code "TH"
// so compound patterns such as "TTH" stay unambiguous.
type Day string

const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "TH"
	Friday    Day = "F"
)

// ExpandDays splits a compound day code into its member days, recognising
// "TH" as one token: "MWF" -> [M W F], "TTH" -> [T TH], "MTH" -> [M TH].
func ExpandDays(code string) []Day {
	var days []Day
	for i := 0; i < len(code); {
		if i+2 <= len(code) && code[i:i+2] == string(Thursday) {
			days = append(days, Thursday)
			i += 2
		} else {
			days = append(days, Day(code[i:i+1]))
			i++
		}
	}
	return days
}

// DaysIntersect reports whether the two day sets share at least one day.
func DaysIntersect(a, b []Day) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// SameDays reports whether the two day sets contain exactly the same days.
func SameDays(a, b []Day) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
