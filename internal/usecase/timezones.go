package usecase

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/venue-directory/internal/pkg/errors"
)

// windowsZone - устаревшее имя пояса, его IANA-аналог и описательные имена
// для стандартного и летнего времени
type windowsZone struct {
	id       string
	iana     string
	standard string
	daylight string
}

var windowsZones = []windowsZone{
	{"Dateline Standard Time", "Etc/GMT+12", "Dateline Standard Time", "Dateline Daylight Time"},
	{"Hawaiian Standard Time", "Pacific/Honolulu", "Hawaiian Standard Time", "Hawaiian Daylight Time"},
	{"Alaskan Standard Time", "America/Anchorage", "Alaskan Standard Time", "Alaskan Daylight Time"},
	{"Pacific Standard Time", "America/Los_Angeles", "Pacific Standard Time", "Pacific Daylight Time"},
	{"US Mountain Standard Time", "America/Phoenix", "Mountain Standard Time", "Mountain Daylight Time"},
	{"Mountain Standard Time", "America/Denver", "Mountain Standard Time", "Mountain Daylight Time"},
	{"Central Standard Time", "America/Chicago", "Central Standard Time", "Central Daylight Time"},
	{"Eastern Standard Time", "America/New_York", "Eastern Standard Time", "Eastern Daylight Time"},
	{"Atlantic Standard Time", "America/Halifax", "Atlantic Standard Time", "Atlantic Daylight Time"},
	{"Newfoundland Standard Time", "America/St_Johns", "Newfoundland Standard Time", "Newfoundland Daylight Time"},
	{"E. South America Standard Time", "America/Sao_Paulo", "Brasilia Standard Time", "Brasilia Summer Time"},
	{"UTC", "Etc/UTC", "Coordinated Universal Time", "Coordinated Universal Time"},
	{"GMT Standard Time", "Europe/London", "GMT Standard Time", "GMT Daylight Time"},
	{"Greenwich Standard Time", "Atlantic/Reykjavik", "Greenwich Standard Time", "Greenwich Daylight Time"},
	{"W. Europe Standard Time", "Europe/Berlin", "W. Europe Standard Time", "W. Europe Daylight Time"},
	{"Romance Standard Time", "Europe/Paris", "Central European Standard Time", "Central European Summer Time"},
	{"Central Europe Standard Time", "Europe/Budapest", "Central European Standard Time", "Central European Summer Time"},
	{"Central European Standard Time", "Europe/Warsaw", "Central European Standard Time", "Central European Summer Time"},
	{"E. Europe Standard Time", "Europe/Chisinau", "E. Europe Standard Time", "E. Europe Daylight Time"},
	{"FLE Standard Time", "Europe/Kiev", "E. Europe Standard Time", "E. Europe Daylight Time"},
	{"GTB Standard Time", "Europe/Bucharest", "E. Europe Standard Time", "E. Europe Daylight Time"},
	{"Russian Standard Time", "Europe/Moscow", "Russian Standard Time", "Russian Daylight Time"},
	{"India Standard Time", "Asia/Calcutta", "India Standard Time", "India Daylight Time"},
	{"China Standard Time", "Asia/Shanghai", "China Standard Time", "China Daylight Time"},
	{"Singapore Standard Time", "Asia/Singapore", "Singapore Standard Time", "Singapore Daylight Time"},
	{"Korea Standard Time", "Asia/Seoul", "Korea Standard Time", "Korea Daylight Time"},
	{"Tokyo Standard Time", "Asia/Tokyo", "Japan Standard Time", "Japan Daylight Time"},
	{"W. Australia Standard Time", "Australia/Perth", "W. Australia Standard Time", "W. Australia Daylight Time"},
	{"Cen. Australia Standard Time", "Australia/Adelaide", "Cen. Australia Standard Time", "Cen. Australia Daylight Time"},
	{"E. Australia Standard Time", "Australia/Brisbane", "AUS Eastern Standard Time", "AUS Eastern Daylight Time"},
	{"AUS Eastern Standard Time", "Australia/Sydney", "AUS Eastern Standard Time", "AUS Eastern Daylight Time"},
	{"New Zealand Standard Time", "Pacific/Auckland", "New Zealand Standard Time", "New Zealand Daylight Time"},
}

var zoneAbbreviations = map[string]string{
	"coordinated universal time":     "UTC",
	"greenwich mean time":            "GMT",
	"eastern standard time":          "EST",
	"eastern daylight time":          "EDT",
	"central standard time":          "CST",
	"central daylight time":          "CDT",
	"mountain standard time":         "MST",
	"mountain daylight time":         "MDT",
	"pacific standard time":          "PST",
	"pacific daylight time":          "PDT",
	"alaskan standard time":          "AKST",
	"alaskan daylight time":          "AKDT",
	"hawaiian standard time":         "HST",
	"atlantic standard time":         "AST",
	"atlantic daylight time":         "ADT",
	"greenwich standard time":        "GMT",
	"gmt standard time":              "GMT",
	"gmt daylight time":              "GMT",
	"central european standard time": "CET",
	"central european summer time":   "CEST",
	"w. europe standard time":        "CET",
	"w. europe daylight time":        "CEST",
	"e. europe standard time":        "EET",
	"e. europe daylight time":        "EEST",
	"russian standard time":          "MSK",
	"japan standard time":            "JST",
	"aus eastern standard time":      "AEST",
	"aus eastern daylight time":      "AEDT",
	"cen. australia standard time":   "ACST",
	"cen. australia daylight time":   "ACDT",
	"w. australia standard time":     "AWST",
	"new zealand standard time":      "NZST",
	"new zealand daylight time":      "NZDT",
}

// lookupWindowsZone ищет запись по устаревшему имени или по IANA-идентификатору
func lookupWindowsZone(zoneID string) (windowsZone, bool) {
	for _, z := range windowsZones {
		if strings.EqualFold(z.id, zoneID) || strings.EqualFold(z.iana, zoneID) {
			return z, true
		}
	}
	return windowsZone{}, false
}

// ResolveZone - часовой пояс по IANA-идентификатору или устаревшему имени Windows
func ResolveZone(zoneID string) (*time.Location, error) {
	trimmed := strings.TrimSpace(zoneID)
	if trimmed == "" || strings.EqualFold(trimmed, "Local") {
		return nil, errors.ErrUnknownTimeZone.WithDetails(map[string]interface{}{"zone": zoneID})
	}

	if loc, err := time.LoadLocation(trimmed); err == nil {
		return loc, nil
	}

	if z, ok := lookupWindowsZone(trimmed); ok {
		if loc, err := time.LoadLocation(z.iana); err == nil {
			return loc, nil
		}
	}

	return nil, errors.ErrUnknownTimeZone.WithDetails(map[string]interface{}{"zone": zoneID})
}

// ZoneAbbreviation - короткое обозначение пояса на момент refUTC
func ZoneAbbreviation(zoneID string, refUTC time.Time) string {
	trimmed := strings.TrimSpace(zoneID)
	switch {
	case trimmed == "":
		return "UTC"
	case strings.EqualFold(trimmed, "UTC"), strings.EqualFold(trimmed, "Etc/UTC"):
		return "UTC"
	case strings.EqualFold(trimmed, "GMT"), strings.EqualFold(trimmed, "Etc/GMT"):
		return "GMT"
	}

	loc, err := ResolveZone(trimmed)
	if err != nil {
		return trimmed
	}

	local := refUTC.In(loc)
	z, ok := lookupWindowsZone(trimmed)
	if !ok {
		abbr, _ := local.Zone()
		return abbr
	}

	name := z.standard
	if local.IsDST() {
		name = z.daylight
	}
	if abbr, ok := zoneAbbreviations[strings.ToLower(name)]; ok {
		return abbr
	}
	return abbreviateZoneName(name)
}

// abbreviateZoneName собирает первые буквы слов, кроме Standard/Daylight/Summer/Time
func abbreviateZoneName(name string) string {
	var letters []rune
	for _, part := range strings.Fields(name) {
		switch strings.ToLower(part) {
		case "standard", "daylight", "summer", "time":
			continue
		}
		letters = append(letters, []rune(strings.ToUpper(part))[0])
	}
	if len(letters) == 0 {
		return name
	}
	return string(letters)
}
