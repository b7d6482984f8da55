package normalize

// Present is the year-range end used for ongoing positions
const Present = "Present"

// Year returns the year portion of a partial date string ("2019-05-01" -> "2019").
// Strings shorter than four characters are returned unchanged; "" stays "".
func Year(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// FormatYearRange renders a start/end pair as "<start year>-<end year>".
// An empty start yields "". The end is "Present" when the position is ongoing
// or the end date is missing.
func FormatYearRange(start, end string, ongoing bool) string {
	if start == "" {
		return ""
	}
	if ongoing || end == "" {
		return Year(start) + "-" + Present
	}
	return Year(start) + "-" + Year(end)
}
