// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package coverage

import (
	"sort"
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// Analyze implements spec §4.8 verbatim: match rules in priority order
// (full MethodId equality, simple-name tail match, substring containment),
// coverage conservation (covered + uncovered == total changed methods),
// confidence/test-type histograms, and the three recommendation rules.
func Analyze(changes *model.CodeChangeSet, tests []model.TestCoverageInfo) *model.CoverageResult {
	changedMethods := changes.ChangedMethods()

	methodCoverage := make(map[string][]model.TestCoverageInfo, len(changedMethods))
	var uncovered []string

	for _, cm := range changedMethods {
		var matches []model.TestCoverageInfo
		for _, tc := range tests {
			if covers(cm, tc) {
				matches = append(matches, tc)
			}
		}
		methodCoverage[cm] = matches
		if len(matches) == 0 {
			uncovered = append(uncovered, cm)
		}
	}

	total := len(changedMethods)
	coveredCount := total - len(uncovered)

	percentage := 100.0
	if total > 0 {
		percentage = 100.0 * float64(coveredCount) / float64(total)
	}

	uncoveredFiles := uncoveredFilesFrom(changes, methodCoverage)

	breakdown, testTypeHisto := histograms(methodCoverage)

	recommendations := buildRecommendations(uncovered, tests)

	sort.Strings(uncovered)

	return &model.CoverageResult{
		CoveragePercentage:      percentage,
		TotalChangedMethods:     total,
		CoveredChangedMethods:   coveredCount,
		UncoveredChangedMethods: len(uncovered),
		UncoveredMethods:        uncovered,
		UncoveredFiles:          uncoveredFiles,
		ConfidenceBreakdown:     breakdown,
		CoverageByTestType:      testTypeHisto,
		Recommendations:         recommendations,
		MethodCoverage:          methodCoverage,
	}
}

// covers implements spec §4.8's three-tier match, checked in priority
// order. tc's covered production method is the first hop of its recorded
// call path (CallPath[0]) — the method TestCoverageFor was originally asked
// about.
func covers(changedMethod string, tc model.TestCoverageInfo) bool {
	if len(tc.CallPath) == 0 {
		return false
	}
	covered := string(tc.CallPath[0])

	// 1. Full MethodId equality, case-insensitive.
	if strings.EqualFold(changedMethod, covered) {
		return true
	}

	// 2. The tail after the last '.' equals the changed method's simple
	// name (parameters stripped).
	coveredSimple := model.MethodID(covered).SimpleName()
	changedSimple := stripParams(changedMethod)
	if strings.EqualFold(coveredSimple, changedSimple) {
		return true
	}

	// 3. Substring containment of the simple name in the full MethodId.
	// Preserved as spec §9 directs despite known false positives (e.g.
	// "Save" matching "SaveChanges").
	if strings.Contains(strings.ToLower(covered), strings.ToLower(changedSimple)) {
		return true
	}

	return false
}

func stripParams(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return s[:i]
	}
	return s
}

// uncoveredFilesFrom returns files whose every changed method has an empty
// covering set, per spec §4.8.
func uncoveredFilesFrom(changes *model.CodeChangeSet, methodCoverage map[string][]model.TestCoverageInfo) []string {
	var out []string
	for _, change := range changes.Changes {
		if len(change.ChangedMethods) == 0 {
			continue
		}
		allUncovered := true
		for _, m := range change.ChangedMethods {
			if len(methodCoverage[m]) > 0 {
				allUncovered = false
				break
			}
		}
		if allUncovered {
			out = append(out, change.FilePath)
		}
	}
	return out
}

// histograms computes the confidence breakdown (over the tests that ended
// up matched to at least one changed method) and the test-type histogram,
// per spec §4.8.
func histograms(methodCoverage map[string][]model.TestCoverageInfo) (model.ConfidenceBreakdown, map[model.TestType]int) {
	var breakdown model.ConfidenceBreakdown
	testTypeHisto := make(map[model.TestType]int)

	var sum float64
	var count int
	for _, matches := range methodCoverage {
		for _, tc := range matches {
			count++
			sum += tc.Confidence
			switch {
			case tc.Confidence >= 0.8:
				breakdown.High++
			case tc.Confidence >= 0.5:
				breakdown.Medium++
			default:
				breakdown.Low++
			}
			testTypeHisto[tc.TestType]++
		}
	}
	if count > 0 {
		breakdown.Mean = sum / float64(count)
	}
	return breakdown, testTypeHisto
}

// buildRecommendations implements spec §4.8's three recommendation rules.
func buildRecommendations(uncovered []string, tests []model.TestCoverageInfo) []model.Recommendation {
	var out []model.Recommendation

	if len(uncovered) > 0 {
		items := append([]string(nil), uncovered...)
		sort.Strings(items)
		out = append(out, model.Recommendation{
			Type:          model.RecommendationMissingTests,
			Description:   "Changed methods have no covering tests in the provided test set.",
			AffectedItems: items,
			Priority:      model.PriorityHigh,
		})
	}

	var lowConfidence []string
	var indirect []string
	for _, tc := range tests {
		if tc.Confidence < 0.6 {
			lowConfidence = append(lowConfidence, string(tc.TestMethodID))
		}
		if tc.CallDepth > 3 {
			indirect = append(indirect, string(tc.TestMethodID))
		}
	}

	if len(lowConfidence) > 0 {
		sort.Strings(lowConfidence)
		out = append(out, model.Recommendation{
			Type:          model.RecommendationLowConfidence,
			Description:   "Some provided tests have low confidence of exercising their target method.",
			AffectedItems: lowConfidence,
			Priority:      model.PriorityMedium,
		})
	}

	if len(indirect) > 0 {
		sort.Strings(indirect)
		out = append(out, model.Recommendation{
			Type:          model.RecommendationIndirectCoverage,
			Description:   "Some provided tests only cover their target method indirectly (call depth > 3).",
			AffectedItems: indirect,
			Priority:      model.PriorityLow,
		})
	}

	return out
}
