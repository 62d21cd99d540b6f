package league

import "gopingpong-app/internal/model"

type View string

const (
	SubmitterView View = "submitter"
	ReviewerView  View = "reviewer"
)

type Buckets struct {
	Draft     []CombinedRecord
	Pending   []CombinedRecord
	Published []CombinedRecord
}

// Partition sorts records into the tab buckets for one viewer team. The
// side filter is explicit: a submitter view matches the home side, a
// reviewer view the away side. Records that fit no bucket are dropped, not
// an error; a record lands in at most one bucket.
func Partition(records []CombinedRecord, viewerTeamID string, view View) Buckets {
	var b Buckets
	for _, rec := range records {
		if !sideMatches(rec.Fixture, viewerTeamID, view) {
			continue
		}
		switch {
		case rec.Result == nil || !rec.Result.Submitted:
			if view == SubmitterView {
				b.Draft = append(b.Draft, rec)
			}
		case rec.Result.Status == model.ResultApproved:
			b.Published = append(b.Published, rec)
		case rec.Result.Status == model.ResultPending ||
			rec.Result.Status == model.ResultAcknowledged ||
			rec.Result.Status == model.ResultRejected:
			b.Pending = append(b.Pending, rec)
		}
	}
	return b
}

func sideMatches(fx model.Fixture, viewerTeamID string, view View) bool {
	if view == ReviewerView {
		return fx.AwayTeam.ID == viewerTeamID
	}
	return fx.HomeTeam.ID == viewerTeamID
}
