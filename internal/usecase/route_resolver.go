package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/errors"
)

const locationUnknown = "Location unknown"

// Адрес из override: "[Метка:] Мир, Район, Ward n[ Sub], Plot|Apartment|Apt n[, Sub][, Room n]"
var overrideRouteRe = regexp.MustCompile(
	`(?:(?P<label>[A-Za-z0-9'&()\- ]{2,40}):\s*)?` +
		`(?P<address>[A-Za-z][A-Za-z0-9'’\- ]+(?:,\s*[A-Za-z][A-Za-z0-9'’\- ]+){0,2},\s*Ward\s*\d+(?:\s*(?:Sub|Subdivision))?\s*,\s*(?:Plot|Apartment|Apt)\s*\d+(?:,\s*(?:Sub|Subdivision))?(?:,\s*Room\s*\d+)?)`,
)

var subdivisionNoteRe = regexp.MustCompile(`(?i)\(subdivision\)`)

// ResolveRoutes - варианты адреса заведения; список никогда не пуст
func ResolveRoutes(venue *domain.Venue) []domain.RouteOption {
	location := venue.Location
	if location == nil {
		return []domain.RouteOption{{DisplayText: locationUnknown, CopyText: locationUnknown}}
	}

	if location.HasOverride() {
		if options := parseOverrideRoutes(*location.Override); len(options) > 0 {
			return options
		}
	}

	detailed := FormatAddressDetailed(location)
	return []domain.RouteOption{{
		DisplayText:    detailed,
		CopyText:       detailed,
		NavigationArgs: optionalArgs(NavigationArgs(location)),
	}}
}

// parseOverrideRoutes разбирает свободный текст на помеченные адреса.
// Метка наследуется следующими адресами, пока не встретится новая.
func parseOverrideRoutes(overrideText string) []domain.RouteOption {
	text := collapseSpaces(overrideText)
	if text == "" {
		return nil
	}

	labelIdx := overrideRouteRe.SubexpIndex("label")
	addressIdx := overrideRouteRe.SubexpIndex("address")

	var options []domain.RouteOption
	seen := make(map[string]struct{})
	currentLabel := ""

	for _, match := range overrideRouteRe.FindAllStringSubmatch(text, -1) {
		if label := strings.TrimSpace(match[labelIdx]); label != "" {
			currentLabel = label
		}

		address := normalizeRouteAddress(match[addressIdx])
		if address == "" {
			continue
		}

		display := address
		if currentLabel != "" {
			display = currentLabel + ": " + address
		}

		key := strings.ToLower(display)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		options = append(options, domain.RouteOption{
			DisplayText:    display,
			CopyText:       address,
			NavigationArgs: optionalArgs(NavigationArgsFromText(address)),
		})
	}

	return options
}

func normalizeRouteAddress(value string) string {
	return strings.TrimRight(collapseSpaces(value), ".")
}

// FormatAddressDetailed - полный адрес из структурированных полей; override имеет приоритет
func FormatAddressDetailed(location *domain.Location) string {
	if location == nil {
		return locationUnknown
	}
	if location.HasOverride() {
		return *location.Override
	}

	parts := nonBlank(location.DataCenter, location.World, location.District)

	ward := fmt.Sprintf("Ward %d", location.Ward)
	if location.Subdivision {
		ward += " (Subdivision)"
	}
	parts = append(parts, ward)

	if location.Apartment > 0 {
		parts = append(parts, fmt.Sprintf("Apartment %d", location.Apartment))
	} else {
		parts = append(parts, fmt.Sprintf("Plot %d", location.Plot))
	}
	if location.Room > 0 {
		parts = append(parts, fmt.Sprintf("Room %d", location.Room))
	}
	if location.Shard != nil && strings.TrimSpace(*location.Shard) != "" {
		parts = append(parts, "Shard "+*location.Shard)
	}

	return strings.Join(parts, ", ")
}

// FormatAddress - короткий адрес для списков
func FormatAddress(location *domain.Location) string {
	if location == nil {
		return locationUnknown
	}
	if location.HasOverride() {
		return *location.Override
	}

	head := fmt.Sprintf("%s, %s, %s, Ward %d",
		deref(location.DataCenter), deref(location.World), deref(location.District), location.Ward)

	if location.Apartment > 0 {
		if location.Subdivision {
			head += ", Subdivision"
		}
		return fmt.Sprintf("%s, Apartment %d", head, location.Apartment)
	}
	return fmt.Sprintf("%s, Plot %d", head, location.Plot)
}

// FormatAddressForTable - адрес для таблицы: несколько маршрутов из override выводятся построчно
func FormatAddressForTable(venue *domain.Venue) string {
	location := venue.Location
	if location == nil {
		return locationUnknown
	}

	if location.HasOverride() {
		routes := parseOverrideRoutes(*location.Override)
		if len(routes) > 1 {
			lines := make([]string, 0, len(routes))
			for _, r := range routes {
				lines = append(lines, r.DisplayText)
			}
			return strings.Join(lines, "\n")
		}
	}

	return FormatAddress(location)
}

// NavigationArgs - аргументы навигации из структурированных полей
func NavigationArgs(location *domain.Location) string {
	if location == nil {
		return ""
	}

	parts := nonBlank(location.DataCenter, location.World)
	if location.District != nil {
		if cleaned := strings.TrimSpace(subdivisionNoteRe.ReplaceAllString(*location.District, "")); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	parts = append(parts, fmt.Sprintf("Ward %d", location.Ward))
	if location.Apartment > 0 {
		parts = append(parts, fmt.Sprintf("Apartment %d", location.Apartment))
		if location.Subdivision {
			parts = append(parts, "Subdivision")
		}
	} else {
		parts = append(parts, fmt.Sprintf("Plot %d", location.Plot))
		if location.Room > 0 {
			parts = append(parts, fmt.Sprintf("Room %d", location.Room))
		}
	}

	return strings.Join(parts, ", ")
}

// NavigationArgsFromText - аргументы навигации из текстового адреса.
// Пустая строка, если перед Ward меньше двух частей или нет Plot/Apartment.
func NavigationArgsFromText(routeText string) string {
	if strings.TrimSpace(routeText) == "" {
		return ""
	}

	var tokens []string
	for _, raw := range strings.Split(routeText, ",") {
		if t := strings.TrimRight(strings.TrimSpace(raw), "."); strings.TrimSpace(t) != "" {
			tokens = append(tokens, t)
		}
	}

	wardIndex := indexOfPrefix(tokens, "Ward ")
	if wardIndex < 2 {
		return ""
	}
	ward := tokens[wardIndex]

	plotIndex := indexOfPrefix(tokens, "Plot ")
	apartmentIndex := indexOfPrefix(tokens, "Apartment ", "Apt ")
	if plotIndex < 0 && apartmentIndex < 0 {
		return ""
	}

	parts := make([]string, 0, wardIndex+4)
	parts = append(parts, tokens[:wardIndex]...)
	parts = append(parts, canonicalToken(ward))

	if apartmentIndex >= 0 {
		parts = append(parts, canonicalToken(tokens[apartmentIndex]))
		if mentionsSubdivision(ward, tokens) {
			parts = append(parts, "Subdivision")
		}
	} else {
		parts = append(parts, canonicalToken(tokens[plotIndex]))
	}

	if room := indexOfPrefix(tokens, "Room "); room >= 0 {
		parts = append(parts, tokens[room])
	}

	return strings.Join(parts, ", ")
}

// ValidateNavigationArgs - аргументы навигации не должны быть пустыми
func ValidateNavigationArgs(args string) error {
	if strings.TrimSpace(args) == "" {
		return errors.ErrDestinationEmpty
	}
	return nil
}

func mentionsSubdivision(ward string, tokens []string) bool {
	if strings.Contains(strings.ToLower(ward), "sub") {
		return true
	}
	for _, t := range tokens {
		lower := strings.ToLower(t)
		if strings.Contains(lower, "subdivision") || lower == "sub" || lower == "s" {
			return true
		}
	}
	return false
}

// canonicalToken приводит написание Ward/Plot/Apartment к каноническому, Apt -> Apartment
func canonicalToken(token string) string {
	cleaned := collapseSpaces(token)
	for _, p := range []struct{ prefix, canonical string }{
		{"Ward", "Ward"},
		{"Apartment", "Apartment"},
		{"Apt", "Apartment"},
		{"Plot", "Plot"},
	} {
		if hasPrefixFold(cleaned, p.prefix) {
			return p.canonical + " " + strings.TrimSpace(cleaned[len(p.prefix):])
		}
	}
	return cleaned
}

func indexOfPrefix(tokens []string, prefixes ...string) int {
	for i, t := range tokens {
		for _, p := range prefixes {
			if hasPrefixFold(t, p) {
				return i
			}
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func nonBlank(values ...*string) []string {
	out := make([]string, 0, len(values)+4)
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			out = append(out, *v)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalArgs(args string) *string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	return &args
}
