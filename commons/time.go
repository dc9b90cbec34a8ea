package commons

import "time"

// AsiaSeoul is the location of KRX. Falls back to a fixed +09:00 zone when tzdata is missing.
var AsiaSeoul = loadSeoul()

func loadSeoul() *time.Location {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return seoul
}

// Now returns the current time in Seoul.
func Now() time.Time {
	return time.Now().In(AsiaSeoul)
}

// Unix returns the local Seoul time of the given unix timestamp.
func Unix(timestamp int64) time.Time {
	return time.Unix(timestamp, 0).In(AsiaSeoul)
}

// Midnight truncates t to 00:00 of its own day in Seoul.
func Midnight(t time.Time) time.Time {
	y, m, d := t.In(AsiaSeoul).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, AsiaSeoul)
}
