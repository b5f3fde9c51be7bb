package model

import (
	"regexp"
	"strings"
)

const (
	prosecutionBaseURL   = "https://www.foodauthority.nsw.gov.au/offences/prosecutions/"
	penaltyNoticeBaseURL = "https://www.foodauthority.nsw.gov.au/offences/penalty-notices/"

	prosecutionIDPrefix = "prosecution-"
)

var numericIDRe = regexp.MustCompile(`^\d+$`)

// NoticeURL builds the external detail-page URL for a record, or "" when the
// record carries no usable reference.
//
// Prosecutions resolve via their slug when present, otherwise via the numeric
// node id embedded in prosecution_notice_id / penalty_notice_number (with the
// "prosecution-" prefix stripped). Ordinary notices resolve via their penalty
// notice number directly.
func NoticeURL(r PenaltyRecord) string {
	if r.IsProsecution() {
		if r.Prosecution != nil && r.Prosecution.Slug != "" {
			return prosecutionBaseURL + r.Prosecution.Slug
		}
		for _, raw := range []string{r.ProsecutionNoticeID, r.PenaltyNoticeNumber} {
			id := strings.TrimPrefix(raw, prosecutionIDPrefix)
			if id != "" && numericIDRe.MatchString(id) {
				return prosecutionBaseURL + id
			}
		}
		return ""
	}

	if n := r.PenaltyNoticeNumber; n != "" && !strings.HasPrefix(n, prosecutionIDPrefix) {
		return penaltyNoticeBaseURL + n
	}
	return ""
}
