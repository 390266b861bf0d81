package domain

import "strings"

const (
	RegionNorthAmerica = "North America"
	RegionEurope       = "Europe"
	RegionOceania      = "Oceania"
	RegionJapan        = "Japan"
)

// Regions - порядок регионов в списках выбора
var Regions = []string{RegionNorthAmerica, RegionEurope, RegionOceania, RegionJapan}

var dataCenterRegions = map[string]string{
	"aether":    RegionNorthAmerica,
	"crystal":   RegionNorthAmerica,
	"dynamis":   RegionNorthAmerica,
	"primal":    RegionNorthAmerica,
	"chaos":     RegionEurope,
	"light":     RegionEurope,
	"materia":   RegionOceania,
	"elemental": RegionJapan,
	"gaia":      RegionJapan,
	"mana":      RegionJapan,
	"meteor":    RegionJapan,
}

// ResolveRegion - регион дата-центра; false для неизвестных дата-центров
func ResolveRegion(dataCenter string) (string, bool) {
	region, ok := dataCenterRegions[strings.ToLower(strings.TrimSpace(dataCenter))]
	return region, ok
}

// RegionDataCenters - известные дата-центры региона в алфавитном порядке
func RegionDataCenters(region string) []string {
	var out []string
	for _, dc := range []string{"Aether", "Chaos", "Crystal", "Dynamis", "Elemental", "Gaia", "Light", "Mana", "Materia", "Meteor", "Primal"} {
		if r, _ := ResolveRegion(dc); strings.EqualFold(r, region) {
			out = append(out, dc)
		}
	}
	return out
}
