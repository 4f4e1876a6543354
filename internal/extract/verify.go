package extract

import (
	"regexp"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// UnverifiedQuoteMarker replaces a source quote that could not be located in
// any raw source. Quotes already carrying the marker are never re-verified.
const UnverifiedQuoteMarker = "[Citation not verified - review required]"

// verifyThreshold is the fraction of a quote's significant words that must
// appear in the combined source text for the citation to count as verified.
const verifyThreshold = 0.60

// Words of 4+ characters; shorter words are too common to be evidence.
var wordRE = regexp.MustCompile(`\b\w{4,}\b`)

// VerifyCitations checks every extracted item's source quote against the
// combined raw source text. Items whose quote passes get CitationVerified
// true; items with a missing or unlocatable quote get false, and unlocatable
// quotes are replaced with UnverifiedQuoteMarker. It sets
// brd.HasUnverifiedCitations and returns the number of replaced quotes.
func VerifyCitations(brd *model.BRD) int {
	var b strings.Builder
	for _, src := range brd.RawSources {
		b.WriteString(strings.ToLower(src.Content))
		b.WriteByte('\n')
	}
	allText := b.String()

	unverified := 0
	for i := range brd.BusinessObjectives {
		o := &brd.BusinessObjectives[i]
		verified, replaced := verifyQuote(&o.SourceQuote, allText)
		o.CitationVerified = &verified
		if replaced {
			unverified++
		}
	}
	unverified += verifyRequirements(brd.FunctionalRequirements, allText)
	unverified += verifyRequirements(brd.NonFunctionalRequirements, allText)

	brd.HasUnverifiedCitations = unverified > 0
	return unverified
}

func verifyRequirements(reqs []model.Requirement, allText string) int {
	unverified := 0
	for i := range reqs {
		r := &reqs[i]
		verified, replaced := verifyQuote(&r.SourceQuote, allText)
		r.CitationVerified = &verified
		if replaced {
			unverified++
		}
	}
	return unverified
}

// verifyQuote checks one quote against the combined source text. It reports
// whether the quote verified and whether it was replaced with the marker.
// Empty quotes and quotes that carry no significant words fail verification
// but are left as-is.
func verifyQuote(quote *string, allText string) (verified, replaced bool) {
	q := strings.TrimSpace(*quote)
	if q == "" || strings.HasPrefix(q, "[") {
		return false, false
	}

	// Distinct words only: a repeated word is one piece of evidence, not many.
	words := map[string]struct{}{}
	for _, w := range wordRE.FindAllString(strings.ToLower(q), -1) {
		words[w] = struct{}{}
	}
	if len(words) == 0 {
		return false, false
	}

	matched := 0
	for w := range words {
		if strings.Contains(allText, w) {
			matched++
		}
	}
	if float64(matched)/float64(len(words)) >= verifyThreshold {
		return true, false
	}

	*quote = UnverifiedQuoteMarker
	return false, true
}
