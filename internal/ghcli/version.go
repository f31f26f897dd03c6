package ghcli

import "github.com/Masterminds/semver/v3"

// MinimumSwitchVersion is the first gh release with `gh auth switch`.
const MinimumSwitchVersion = "2.40.0"

var switchConstraint = mustConstraint(">= " + MinimumSwitchVersion)

// SupportsAuthSwitch reports whether v can switch between stored accounts.
func SupportsAuthSwitch(v *semver.Version) bool {
	return switchConstraint.Check(v)
}

// mustConstraint parses a constant constraint and panics if it is malformed.
func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}
