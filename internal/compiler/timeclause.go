package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
)

const minYear = 2000

var (
	yearRe       = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	monthTokenRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\b`)
	lastMonthsRe = regexp.MustCompile(`(?i)last\s+(\d{1,2})\s+months?`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// timeClause resolves the intent's time fields into a predicate with
// bound parameters. Explicit Year/Month override the free-text phrase;
// "last N months" anchors to the dataset's latest timestamp so
// compilation stays deterministic. Unrecognized phrases yield the
// tautology, never an error. An out-of-range year is the one failure.
func timeClause(args *argList, in model.Intent, temporal model.Temporal) (string, error) {
	year, month := in.Year, in.Month

	if year == 0 && in.TimeConstraint != "" {
		if m := lastMonthsRe.FindStringSubmatch(in.TimeConstraint); m != nil && !temporal.DataMax.IsZero() {
			n, _ := strconv.Atoi(m[1])
			if n <= 0 {
				n = 6
			}
			end := temporal.DataMax
			start := end.AddDate(0, 0, -30*n)
			return fmt.Sprintf(`"timestamp" BETWEEN %s AND %s`, args.add(start), args.add(end)), nil
		}
		if m := yearRe.FindString(in.TimeConstraint); m != "" {
			year, _ = strconv.Atoi(m)
		}
		if month == 0 {
			if m := monthTokenRe.FindStringSubmatch(in.TimeConstraint); m != nil {
				month = monthNumbers[strings.ToLower(m[1])]
			}
		}
	}

	if year == 0 {
		return "1=1", nil
	}
	if err := checkYear(year, temporal); err != nil {
		return "", err
	}
	if month >= 1 && month <= 12 {
		return fmt.Sprintf(`EXTRACT(YEAR FROM "timestamp") = %s AND EXTRACT(MONTH FROM "timestamp") = %s`,
			args.add(year), args.add(month)), nil
	}
	return fmt.Sprintf(`EXTRACT(YEAR FROM "timestamp") = %s`, args.add(year)), nil
}

func checkYear(year int, temporal model.Temporal) error {
	max := temporal.CurrentYear + 1
	if year < minYear || (temporal.CurrentYear > 0 && year > max) {
		return &model.CompileError{
			Kind:    model.ErrOutOfRangeYear,
			Message: fmt.Sprintf("the year %d is outside the supported range %d to %d", year, minYear, max),
		}
	}
	return nil
}
