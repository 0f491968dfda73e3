package affil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectCountry(t *testing.T) {
	cases := []struct {
		segment string
		want    string
	}{
		{"Harvard University, Cambridge, United States", "united states of america"},
		{"Dept of Chemistry, MIT, Cambridge, MA, USA", "united states of america"},
		{"University of Edinburgh, Edinburgh, Scotland", "united kingdom"},
		{"Tsinghua Univ, Beijing, Peoples R China", "china"},
		{"Univ Utrecht, The Netherlands", "netherlands"},
		{"Somewhere, Niger", "niger"},
		{"University of Lagos, Nigeria", "nigeria"},
		{"Sultan Qaboos University, Oman", "oman"},
		// "oman" inside "romania" must not match.
		{"University of Bucharest, Romania", "romania"},
		{"No location hints at all", "UNKNOWN"},
	}
	for _, c := range cases {
		if got := DetectCountry(c.segment); got != c.want {
			t.Errorf("DetectCountry(%q) = %q, want %q", c.segment, got, c.want)
		}
	}
}

func TestDetectInstitution(t *testing.T) {
	cases := []struct {
		segment string
		want    string
	}{
		// University outranks the department chunk.
		{"Dept of Physics, Harvard University, Cambridge, United States", "harvard university"},
		{"Dept of Physics, MIT, Cambridge, MA, USA", "dept of physics"},
		{"Smith J., Dept of Physics, MIT", "dept of physics"},
		{"Doe A., Dept of Chemistry, Harvard University", "harvard university"},
		{"Institute for Advanced Study, Princeton", "institute for advanced study"},
		{"School of Medicine, General Hospital, Boston", "school of medicine"},
		{"12 Nowhere Street, Springfield", "UNKNOWN"},
	}
	for _, c := range cases {
		if got := DetectInstitution(c.segment); got != c.want {
			t.Errorf("DetectInstitution(%q) = %q, want %q", c.segment, got, c.want)
		}
	}
}

func TestResolve_PositionalSegments(t *testing.T) {
	authors := [][]string{{"smith j.", "doe a."}}
	affs := []string{"Harvard University, Cambridge, United States; University of Oxford, Oxford, United Kingdom"}
	corr := []string{"UNKNOWN"}

	res := Resolve("scopus", authors, affs, corr)

	wantCountries := []string{"united states of america", "united kingdom"}
	if diff := cmp.Diff(wantCountries, res.Countries[0]); diff != "" {
		t.Errorf("countries mismatch (-want +got):\n%s", diff)
	}
	wantInst := []string{"harvard university", "university of oxford"}
	if diff := cmp.Diff(wantInst, res.Institutions[0]); diff != "" {
		t.Errorf("institutions mismatch (-want +got):\n%s", diff)
	}

	if len(res.First["smith j."]) != 1 {
		t.Errorf("smith j. not recorded as first author")
	}
	if res.All["doe a."][0].Country != "united kingdom" {
		t.Errorf("doe a. country = %q", res.All["doe a."][0].Country)
	}
}

func TestResolve_SingleSegmentSharedByAll(t *testing.T) {
	authors := [][]string{{"smith j.", "doe a.", "zed q."}}
	affs := []string{"University of Oslo, Oslo, Norway"}
	corr := []string{""}

	res := Resolve("scopus", authors, affs, corr)
	for i, c := range res.Countries[0] {
		if c != "norway" {
			t.Errorf("author %d country = %q, want norway", i, c)
		}
	}
}

func TestResolve_CorrespondingAuthorUsesCorrespondenceField(t *testing.T) {
	authors := [][]string{{"smith j.", "doe a."}}
	affs := []string{"Harvard University, Cambridge, United States; University of Oxford, Oxford, United Kingdom"}
	corr := []string{"Doe A.; University of Melbourne, Melbourne, Australia"}

	res := Resolve("scopus", authors, affs, corr)

	// The corresponding author resolves from the correspondence field,
	// not from the positional segment.
	if got := res.Countries[0][1]; got != "australia" {
		t.Errorf("corresponding author country = %q, want australia", got)
	}
	if got := res.Countries[0][0]; got != "united states of america" {
		t.Errorf("first author country = %q, want united states of america", got)
	}
	assigns := res.Corresponding["doe a."]
	if len(assigns) != 1 || assigns[0].Country != "australia" {
		t.Errorf("corresponding map = %+v", assigns)
	}
}

func TestResolve_WoSBracketGroups(t *testing.T) {
	authors := [][]string{{"smith, j.", "doe, a.", "zed, q."}}
	affs := []string{"[Smith, J.; Doe, A.] Univ Toronto, Toronto, ON, Canada; [Zed, Q.] Univ Sao Paulo, Sao Paulo, Brazil"}
	corr := []string{""}

	res := Resolve("wos", authors, affs, corr)

	want := []string{"canada", "canada", "brazil"}
	if diff := cmp.Diff(want, res.Countries[0]); diff != "" {
		t.Errorf("countries mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_UnknownAffiliation(t *testing.T) {
	authors := [][]string{{"smith j."}}
	res := Resolve("scopus", authors, []string{"UNKNOWN"}, []string{""})
	if res.Countries[0][0] != "UNKNOWN" || res.Institutions[0][0] != "UNKNOWN" {
		t.Errorf("got %q/%q, want UNKNOWN/UNKNOWN",
			res.Countries[0][0], res.Institutions[0][0])
	}
}

func TestReplaceUnknowns_ForwardFillOnly(t *testing.T) {
	values := []string{"UNKNOWN", "brazil", "UNKNOWN", "chile", "UNKNOWN"}
	ReplaceUnknowns(values)
	want := []string{"UNKNOWN", "brazil", "brazil", "chile", "chile"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("forward fill mismatch (-want +got):\n%s", diff)
	}
}
