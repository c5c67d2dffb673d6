package service

import (
	"iter"

	"microreg/registry/domain"

	"github.com/Masterminds/semver/v3"
)

// parseConstraint parses a semantic version range such as "^1.0.0", "~1.2", "2.x",
// ">=1.0.0 <2.0.0", "1.0.0 - 1.4.0" or "*".
func parseConstraint(constraint string) (*semver.Constraints, error) {
	return semver.NewConstraint(constraint)
}

// match yields the records named name whose version satisfies constraint.
// Records with an unparseable version never match.
func match(records iter.Seq[domain.Record], name string, constraint *semver.Constraints) iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		for record := range records {
			if record.Name != name {
				continue
			}
			version, err := semver.NewVersion(record.Version)
			if err != nil || !constraint.Check(version) {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}
