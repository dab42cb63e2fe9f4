package sheet

import (
	"strconv"

	"github.com/snelllabs/creativeboard/internal/models"
)

// AggregateProject turns one project's raw CSV export into its per-creative
// activity ledger and latest-day snapshot. It is a pure function: identical
// input always produces identical output.
func AggregateProject(csvText, projectID string) (*models.ProjectAggregate, error) {
	t, err := parseTable(csvText, projectID)
	if err != nil {
		return nil, err
	}

	cols := t.accountColumns()
	if cols == 0 {
		return nil, &SchemaError{Project: projectID}
	}

	agg := &models.ProjectAggregate{
		Project:            projectID,
		CreativeHistory:    make(map[string]*models.CreativeHistory),
		AccountColumnCount: cols,
	}
	seenAccounts := make(map[string]struct{})

	for _, row := range t.rows {
		for i := 1; i <= cols; i++ {
			account := row["Account_"+strconv.Itoa(i)]
			creative := row["Creative_"+strconv.Itoa(i)]
			if account == "" || creative == "" {
				continue // unused slot
			}
			if _, ok := seenAccounts[account]; !ok {
				seenAccounts[account] = struct{}{}
				agg.Accounts = append(agg.Accounts, account)
			}

			h, ok := agg.CreativeHistory[creative]
			if !ok {
				h = &models.CreativeHistory{Creative: creative, Project: projectID}
				agg.CreativeHistory[creative] = h
				agg.CreativeOrder = append(agg.CreativeOrder, creative)
			}
			u := users(row, i)
			h.TotalUsers += u
			h.LastActiveDate = row["Date"]
			h.History = append(h.History, models.Observation{
				Date:    row["Date"],
				Account: account,
				Users:   u,
			})
			if !containsStr(h.Accounts, account) {
				h.Accounts = append(h.Accounts, account)
			}
		}
	}

	for _, creative := range agg.CreativeOrder {
		h := agg.CreativeHistory[creative]
		h.DaysActive = distinctDates(h.History)
		if h.DaysActive > 0 {
			h.AvgUsersPerDay = round1(float64(h.TotalUsers) / float64(h.DaysActive))
		}
	}

	// Latest date is a file-order pick: the last surviving row wins, even if
	// the input is not chronologically sorted. Callers own that ordering.
	if len(t.rows) > 0 {
		agg.LatestDate = t.rows[len(t.rows)-1]["Date"]
	}
	if agg.LatestDate != "" {
		// Every row carrying the latest date contributes slots; a day may
		// span several rows.
		for _, row := range t.rows {
			if row["Date"] != agg.LatestDate {
				continue
			}
			for i := 1; i <= cols; i++ {
				account := row["Account_"+strconv.Itoa(i)]
				creative := row["Creative_"+strconv.Itoa(i)]
				if account == "" || creative == "" {
					continue
				}
				agg.ActiveSlots = append(agg.ActiveSlots, models.ActiveSlot{
					Creative: creative,
					Account:  account,
					Users:    users(row, i),
					Project:  projectID,
				})
			}
		}
	}

	return agg, nil
}

func distinctDates(history []models.Observation) int {
	seen := make(map[string]struct{}, len(history))
	for _, o := range history {
		seen[o.Date] = struct{}{}
	}
	return len(seen)
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func round1(f float64) float64 { return float64(int64(f*10+0.5)) / 10 }
