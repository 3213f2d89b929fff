package models

import "strings"

type BodyRegion string

const (
	RegionHead          BodyRegion = "head"
	RegionNeck          BodyRegion = "neck"
	RegionChest         BodyRegion = "chest"
	RegionStomach       BodyRegion = "stomach"
	RegionPelvis        BodyRegion = "pelvis"
	RegionArmLeft       BodyRegion = "arm-left"
	RegionArmRight      BodyRegion = "arm-right"
	RegionLegLeftUpper  BodyRegion = "leg-left-upper"
	RegionLegRightUpper BodyRegion = "leg-right-upper"
	RegionLegLeftLower  BodyRegion = "leg-left-lower"
	RegionLegRightLower BodyRegion = "leg-right-lower"
	RegionGeneral       BodyRegion = "general"
)

func BodyRegions() []BodyRegion {
	return []BodyRegion{
		RegionHead,
		RegionNeck,
		RegionChest,
		RegionStomach,
		RegionPelvis,
		RegionArmLeft,
		RegionArmRight,
		RegionLegLeftUpper,
		RegionLegRightUpper,
		RegionLegLeftLower,
		RegionLegRightLower,
		RegionGeneral,
	}
}

// ParseBodyRegion accepts the canonical ids plus the short ids used by older
// exports ("arm-l", "leg-r-lower"). Empty input maps to RegionGeneral.
func ParseBodyRegion(raw string) (BodyRegion, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return RegionGeneral, true
	}
	if alias, ok := legacyRegionAliases[normalized]; ok {
		return alias, true
	}
	for _, region := range BodyRegions() {
		if string(region) == normalized {
			return region, true
		}
	}
	return "", false
}

var legacyRegionAliases = map[string]BodyRegion{
	"arm-l":       RegionArmLeft,
	"arm-r":       RegionArmRight,
	"leg-l-upper": RegionLegLeftUpper,
	"leg-r-upper": RegionLegRightUpper,
	"leg-l-lower": RegionLegLeftLower,
	"leg-r-lower": RegionLegRightLower,
}
