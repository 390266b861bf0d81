// Package assets embeds the static files the service falls back to when
// nothing is configured on disk.
package assets

import "embed"

// Files holds the housing plot reference sheet and the banner placeholder.
//
//go:embed housing_land_set.csv loading.png
var Files embed.FS

const (
	PlotDatasetFile = "housing_land_set.csv"
	PlaceholderFile = "loading.png"
)
