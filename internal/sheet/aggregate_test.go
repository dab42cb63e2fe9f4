package sheet

import (
	"errors"
	"reflect"
	"testing"
)

const scenarioCSV = `Date,Account_1,Creative_1,Users_1
2024-01-01,acct1,cr_A,5
2024-01-02,acct1,cr_A,7
2024-01-02,acct2,cr_B,3`

func TestAggregateProjectScenario(t *testing.T) {
	agg, err := AggregateProject(scenarioCSV, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.LatestDate != "2024-01-02" {
		t.Fatalf("latest date = %q, want 2024-01-02", agg.LatestDate)
	}
	if agg.AccountColumnCount != 1 {
		t.Fatalf("account columns = %d, want 1", agg.AccountColumnCount)
	}

	a := agg.CreativeHistory["cr_A"]
	if a == nil {
		t.Fatal("cr_A missing from history")
	}
	if a.TotalUsers != 12 || a.DaysActive != 2 || a.AvgUsersPerDay != 6.0 {
		t.Fatalf("cr_A = total %d days %d avg %v, want 12/2/6.0", a.TotalUsers, a.DaysActive, a.AvgUsersPerDay)
	}
	if !reflect.DeepEqual(a.Accounts, []string{"acct1"}) {
		t.Fatalf("cr_A accounts = %v, want [acct1]", a.Accounts)
	}
	if a.LastActiveDate != "2024-01-02" {
		t.Fatalf("cr_A last active = %q, want 2024-01-02", a.LastActiveDate)
	}

	b := agg.CreativeHistory["cr_B"]
	if b == nil {
		t.Fatal("cr_B missing from history")
	}
	if b.TotalUsers != 3 || b.DaysActive != 1 || b.AvgUsersPerDay != 3.0 {
		t.Fatalf("cr_B = total %d days %d avg %v, want 3/1/3.0", b.TotalUsers, b.DaysActive, b.AvgUsersPerDay)
	}

	if len(agg.ActiveSlots) != 2 {
		t.Fatalf("active slots = %d, want 2", len(agg.ActiveSlots))
	}
	s0, s1 := agg.ActiveSlots[0], agg.ActiveSlots[1]
	if s0.Creative != "cr_A" || s0.Account != "acct1" || s0.Users != 7 {
		t.Fatalf("slot 0 = %+v", s0)
	}
	if s1.Creative != "cr_B" || s1.Account != "acct2" || s1.Users != 3 {
		t.Fatalf("slot 1 = %+v", s1)
	}
}

func TestAggregateProjectLatestDateIsFileOrderPick(t *testing.T) {
	// Out-of-order input: the last row's date is the "latest" even though a
	// later calendar date appears earlier in the file.
	csv := `Date,Account_1,Creative_1,Users_1
2024-01-05,acct1,cr_A,7
2024-01-01,acct2,cr_B,5`
	agg, err := AggregateProject(csv, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.LatestDate != "2024-01-01" {
		t.Fatalf("latest date = %q, want file-order pick 2024-01-01", agg.LatestDate)
	}
	if len(agg.ActiveSlots) != 1 || agg.ActiveSlots[0].Creative != "cr_B" {
		t.Fatalf("active slots = %+v, want only cr_B", agg.ActiveSlots)
	}
}

func TestAggregateProjectIdempotent(t *testing.T) {
	a, err := AggregateProject(scenarioCSV, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := AggregateProject(scenarioCSV, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs over identical input differ")
	}
}

func TestAggregateProjectConservation(t *testing.T) {
	agg, err := AggregateProject(scenarioCSV, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, h := range agg.CreativeHistory {
		sum := 0
		dates := map[string]struct{}{}
		accts := map[string]struct{}{}
		for _, o := range h.History {
			sum += o.Users
			dates[o.Date] = struct{}{}
			accts[o.Account] = struct{}{}
		}
		if sum != h.TotalUsers {
			t.Errorf("%s: total %d != history sum %d", name, h.TotalUsers, sum)
		}
		if len(dates) != h.DaysActive {
			t.Errorf("%s: days active %d != distinct dates %d", name, h.DaysActive, len(dates))
		}
		if len(accts) != len(h.Accounts) {
			t.Errorf("%s: accounts %v != distinct history accounts %d", name, h.Accounts, len(accts))
		}
	}
}

func TestAggregateProjectFormatError(t *testing.T) {
	for _, csv := range []string{"", "Date,Account_1,Creative_1,Users_1", "Date,Account_1\n\n\n"} {
		_, err := AggregateProject(csv, "demo")
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("csv %q: got %v, want FormatError", csv, err)
		}
	}
}

func TestAggregateProjectSchemaError(t *testing.T) {
	csv := "Date,Campaign,Users_1\n2024-01-01,x,5"
	_, err := AggregateProject(csv, "demo")
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if se.Project != "demo" {
		t.Fatalf("schema error project = %q", se.Project)
	}
}

func TestAggregateProjectEmptyCreativeSlotIgnored(t *testing.T) {
	csv := `Date,Account_1,Creative_1,Users_1
2024-01-01,acct1,,9`
	agg, err := AggregateProject(csv, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.CreativeHistory) != 0 || len(agg.Accounts) != 0 || len(agg.ActiveSlots) != 0 {
		t.Fatalf("empty creative slot leaked into aggregate: %+v", agg)
	}
}

func TestAggregateProjectMalformedUsersDefaultsToZero(t *testing.T) {
	csv := `Date,Account_1,Creative_1,Users_1
2024-01-01,acct1,cr_A,abc
2024-01-02,acct1,cr_A,4`
	agg, err := AggregateProject(csv, "demo")
	if err != nil {
		t.Fatalf("malformed numeric should not fail: %v", err)
	}
	h := agg.CreativeHistory["cr_A"]
	if h.TotalUsers != 4 {
		t.Fatalf("total users = %d, want 4 (abc coerced to 0)", h.TotalUsers)
	}
	if h.History[0].Users != 0 {
		t.Fatalf("first observation users = %d, want 0", h.History[0].Users)
	}
}

func TestAggregateProjectRowsWithoutDateDropped(t *testing.T) {
	csv := `Date,Account_1,Creative_1,Users_1
2024-01-01,acct1,cr_A,5
,acct2,cr_B,3`
	agg, err := AggregateProject(csv, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := agg.CreativeHistory["cr_B"]; ok {
		t.Fatal("dateless row contributed history")
	}
	if agg.LatestDate != "2024-01-01" {
		t.Fatalf("latest date = %q, want 2024-01-01", agg.LatestDate)
	}
}

func TestAggregateProjectShortRowsAndQuotes(t *testing.T) {
	csv := `"Date","Account_1","Creative_1","Users_1","Account_2","Creative_2","Users_2"
"2024-01-01","acct1","cr_A","5"
2024-01-02,acct1,cr_A,7,acct2,cr_B,3`
	agg, err := AggregateProject(csv, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.AccountColumnCount != 2 {
		t.Fatalf("account columns = %d, want 2", agg.AccountColumnCount)
	}
	// Missing trailing cells default to empty, so slot 2 of the first row
	// contributes nothing.
	if agg.CreativeHistory["cr_A"].TotalUsers != 12 {
		t.Fatalf("cr_A total = %d, want 12", agg.CreativeHistory["cr_A"].TotalUsers)
	}
	if !reflect.DeepEqual(agg.Accounts, []string{"acct1", "acct2"}) {
		t.Fatalf("accounts = %v", agg.Accounts)
	}
}
