// Package keys builds response-cache keys from normalized questions.
package keys

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	h3 "github.com/uber/h3-go/v4"

	"github.com/kiyer/argoquery/internal/core/model"
)

// Prefix is shared by every response-cache key so a flush can target
// only this keyspace.
const Prefix = "resp:"

var coordRe = regexp.MustCompile(`-?\d+\.\d+`)

// Key derives the cache key for a question. Questions carrying explicit
// coordinates fold the point into an H3 cell at the given resolution,
// so nearby repeats of the same question share an entry; the literal
// coordinate text is masked out of the hashed form for the same reason.
func Key(question string, in model.Intent, res int) string {
	norm := normalize(question)

	if in.Latitude != nil && in.Longitude != nil {
		cell, err := h3.LatLngToCell(h3.LatLng{Lat: *in.Latitude, Lng: *in.Longitude}, res)
		if err == nil {
			masked := coordRe.ReplaceAllString(norm, "@")
			sum := xxhash.Sum64String(masked)
			return fmt.Sprintf("%s%s:%s:%016x", Prefix, in.QueryType, cell, sum)
		}
	}

	sum := xxhash.Sum64String(norm)
	return fmt.Sprintf("%s%s:%016x", Prefix, in.QueryType, sum)
}

// QuestionKey hashes the normalized question text alone. It is
// computable before any intent exists, so the boundary can look up a
// verbatim repeat without paying the draft round trip; the
// intent-derived Key still catches coordinate near-misses afterwards.
func QuestionKey(question string) string {
	return fmt.Sprintf("%sq:%016x", Prefix, xxhash.Sum64String(normalize(question)))
}

func normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
