package internal

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version of the document format this runtime writes and understands.
const (
	MajorVersion = 1
	MinorVersion = 0
	PatchVersion = 0
)

type Version struct {
	Major int
	Minor int
	Patch int
}

func CurrentVersion() Version {
	return Version{MajorVersion, MinorVersion, PatchVersion}
}

// ParseVersion accepts any semantic version ("1.2", "v1.2.3", ...).
func ParseVersion(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return Version{Major: int(v.Major()), Minor: int(v.Minor()), Patch: int(v.Patch())}, nil
}

func (v Version) String() string {
	return semver.New(uint64(max(0, v.Major)), uint64(max(0, v.Minor)), uint64(max(0, v.Patch)), "", "").String()
}

// Supports reports whether the document was written at version
// (major, minor, patch) or later.
func (v Version) Supports(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// CanBeDisplayed reports whether a player at (playerMajor, playerMinor) can
// show the document. Capabilities are reserved and not checked yet.
func (v Version) CanBeDisplayed(playerMajor, playerMinor int, capabilities int64) bool {
	if v.Major < playerMajor {
		return true
	}
	if v.Major > playerMajor {
		return false
	}
	return v.Minor <= playerMinor
}
