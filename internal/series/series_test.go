package series

import (
	"errors"
	"testing"
	"time"

	"MarketLens/internal/model"
)

var nan = model.Missing()

func day(n int) time.Time { return time.Date(2025, 3, n, 0, 0, 0, 0, time.UTC) }

func table(symbols []string, rows ...model.QuoteRow) *model.QuoteTable {
	return &model.QuoteTable{Symbols: symbols, Period: "1y", Interval: "1d", Rows: rows}
}

func row(d time.Time, values ...float64) model.QuoteRow {
	return model.QuoteRow{Date: d, Values: values}
}

func TestValidate_DropsEmptyRowsAndSorts(t *testing.T) {
	raw := table([]string{"A", "B"},
		row(day(3), 11, 5),
		row(day(1), 10, nan),
		row(day(2), nan, nan),
		row(day(4), nan, 6),
	)
	pt, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []time.Time{day(1), day(3), day(4)}
	got := pt.Dates()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("row %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	a, _ := pt.Column("A")
	if a[0] != 10 || a[1] != 11 || !model.IsMissing(a[2]) {
		t.Errorf("unexpected column A: %v", a)
	}
}

func TestValidate_MergesSameDay(t *testing.T) {
	raw := table([]string{"A", "B"},
		row(day(1).Add(14*time.Hour), 10, nan),
		row(day(1).Add(20*time.Hour), 12, 5),
		row(day(1).Add(21*time.Hour), nan, 7),
	)
	pt, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if pt.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", pt.Len())
	}
	a, _ := pt.Column("A")
	b, _ := pt.Column("B")
	if a[0] != 12 || b[0] != 7 {
		t.Errorf("expected A=12 B=7, got A=%v B=%v", a[0], b[0])
	}
}

func TestValidate_AllRowsEmpty(t *testing.T) {
	raw := table([]string{"A", "B"},
		row(day(1), nan, nan),
		row(day(2), nan, nan),
	)
	_, err := Validate(raw)
	if !errors.Is(err, model.ErrEmptyData) {
		t.Fatalf("expected ErrEmptyData, got %v", err)
	}
	var empty *model.EmptyDataError
	if !errors.As(err, &empty) {
		t.Fatalf("expected *EmptyDataError, got %T", err)
	}
	if len(empty.Symbols) != 2 || empty.Period != "1y" {
		t.Errorf("unexpected error detail: %+v", empty)
	}
}

func TestValidate_NilAndNoSymbols(t *testing.T) {
	if _, err := Validate(nil); !errors.Is(err, model.ErrEmptyData) {
		t.Errorf("nil table: expected ErrEmptyData, got %v", err)
	}
	if _, err := Validate(table(nil)); !errors.Is(err, model.ErrEmptyData) {
		t.Errorf("no symbols: expected ErrEmptyData, got %v", err)
	}
}

func TestValidate_RowWidthMismatch(t *testing.T) {
	raw := table([]string{"A", "B"}, row(day(1), 10))
	_, err := Validate(raw)
	if err == nil || errors.Is(err, model.ErrEmptyData) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestNormalizeRate_ConvertsExactly(t *testing.T) {
	raws := []float64{42.5, 39.87, 45.01}
	raw := table([]string{"^TNX"},
		row(day(3), raws[2]),
		row(day(1), raws[0]),
		row(day(2), nan),
		row(day(2).Add(time.Hour), raws[1]),
	)
	rate := NormalizeRate(raw)
	if len(rate) != 3 {
		t.Fatalf("expected 3 points, got %d", len(rate))
	}
	want := []model.RatePoint{
		{Date: day(1), Percent: raws[0] / 10},
		{Date: day(2), Percent: raws[1] / 10},
		{Date: day(3), Percent: raws[2] / 10},
	}
	for i, w := range want {
		if !rate[i].Date.Equal(w.Date) || rate[i].Percent != w.Percent {
			t.Errorf("point %d: expected %+v, got %+v", i, w, rate[i])
		}
	}
}

func TestNormalizeRate_TakesFirstColumn(t *testing.T) {
	raw := table([]string{"^TNX", "extra"}, row(day(1), 40, 999))
	rate := NormalizeRate(raw)
	if len(rate) != 1 || rate[0].Percent != 4 {
		t.Fatalf("expected [4], got %+v", rate)
	}
}

func TestNormalizeRate_Empty(t *testing.T) {
	tests := []struct {
		name string
		raw  *model.QuoteTable
	}{
		{"nil", nil},
		{"no rows", table([]string{"^TNX"})},
		{"all missing", table([]string{"^TNX"}, row(day(1), nan))},
	}
	for _, tt := range tests {
		if rate := NormalizeRate(tt.raw); !rate.Empty() {
			t.Errorf("%s: expected empty series, got %+v", tt.name, rate)
		}
	}
}

func mustValidate(t *testing.T, raw *model.QuoteTable) *model.PriceTable {
	t.Helper()
	pt, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return pt
}

func TestAlign_NoRate(t *testing.T) {
	pt := mustValidate(t, table([]string{"A", "B"},
		row(day(1), 10, 5),
		row(day(2), 12, 5),
		row(day(3), 11, 5),
	))
	ds := Align(pt, nil, "")
	if _, ok := ds.Rate(); ok {
		t.Error("expected no rate column")
	}
	if got := len(ds.Symbols()); got != 2 {
		t.Errorf("expected 2 columns, got %d", got)
	}
}

func TestAlign_LeftJoinAndFill(t *testing.T) {
	// A price table may carry a row that is missing for its only symbol
	// when it was built directly rather than through Validate.
	pt, err := model.NewPriceTable(
		[]time.Time{day(1), day(2), day(3)},
		[]string{"A"},
		[]model.Column{{10, nan, 10}},
	)
	if err != nil {
		t.Fatalf("NewPriceTable: %v", err)
	}
	rate := NormalizeRate(table([]string{"^TNX"},
		row(day(1), 20),
		row(day(3), 40),
		row(day(9), 50),
	))

	ds := Align(pt, rate, "")
	rc, ok := ds.Rate()
	if !ok {
		t.Fatal("expected rate column")
	}
	if rc.Name != model.DefaultRateName {
		t.Errorf("expected rate name %s, got %s", model.DefaultRateName, rc.Name)
	}
	wantRate := []float64{2, 2, 4}
	for i, w := range wantRate {
		if rc.Values[i] != w {
			t.Errorf("rate[%d]: expected %v, got %v", i, w, rc.Values[i])
		}
	}
	a, _ := ds.Column("A")
	for i, v := range a {
		if v != 10 {
			t.Errorf("A[%d]: expected 10, got %v", i, v)
		}
	}
	if ds.Len() != pt.Len() {
		t.Errorf("join dropped rows: %d != %d", ds.Len(), pt.Len())
	}
}

func TestAlign_LeadingGapStaysMissing(t *testing.T) {
	pt := mustValidate(t, table([]string{"X", "Y"},
		row(day(1), nan, 1),
		row(day(2), nan, 2),
		row(day(3), 7, nan),
		row(day(4), nan, 4),
		row(day(5), nan, 3),
	))
	if pt.Len() != 5 {
		t.Fatalf("expected every row kept, got %d", pt.Len())
	}
	rate := model.RateSeries{{Date: day(3), Percent: 4.2}}
	ds := Align(pt, rate, "rate")

	x, _ := ds.Column("X")
	if !model.IsMissing(x[0]) || !model.IsMissing(x[1]) {
		t.Errorf("leading cells of X must stay missing, got %v", x)
	}
	if x[2] != 7 || x[3] != 7 || x[4] != 7 {
		t.Errorf("expected X filled with 7 after first observation, got %v", x)
	}
	rc, _ := ds.Rate()
	if !model.IsMissing(rc.Values[0]) || !model.IsMissing(rc.Values[1]) || rc.Values[3] != 4.2 || rc.Values[4] != 4.2 {
		t.Errorf("unexpected rate column %v", rc.Values)
	}
}

func TestAlign_FillIsMonotonic(t *testing.T) {
	pt := mustValidate(t, table([]string{"A", "B"},
		row(day(1), nan, 1),
		row(day(2), 3, nan),
		row(day(3), nan, nan),
		row(day(4), nan, 2),
		row(day(5), 5, nan),
	))
	ds := Align(pt, nil, "")
	for _, sym := range pt.Symbols() {
		before, _ := pt.Column(sym)
		after, _ := ds.Column(sym)
		if len(after) != pt.Len() {
			t.Errorf("%s: expected %d rows, got %d", sym, pt.Len(), len(after))
		}
		if after.NonMissing() < before.NonMissing() || after.NonMissing() > len(after) {
			t.Errorf("%s: non-missing went from %d to %d", sym, before.NonMissing(), after.NonMissing())
		}
	}
}

func TestAlign_DoesNotMutateInput(t *testing.T) {
	pt := mustValidate(t, table([]string{"A", "B"},
		row(day(1), 1, 1),
		row(day(2), nan, 1),
	))
	Align(pt, nil, "")
	a, _ := pt.Column("A")
	if !model.IsMissing(a[1]) {
		t.Errorf("price table was mutated: %v", a)
	}
}

func TestAlign_MatchesRateByCalendarDay(t *testing.T) {
	at := func(n int) time.Time { return time.Date(2025, 3, n, 14, 30, 0, 0, time.UTC) }
	pt, err := model.NewPriceTable(
		[]time.Time{at(1), at(2)},
		[]string{"A"},
		[]model.Column{{100, 101}},
	)
	if err != nil {
		t.Fatalf("NewPriceTable: %v", err)
	}
	rate := model.RateSeries{{Date: day(1), Percent: 2}, {Date: day(2), Percent: 3}}

	rc, ok := Align(pt, rate, "").Rate()
	if !ok {
		t.Fatal("expected a rate column")
	}
	if rc.Values[0] != 2 || rc.Values[1] != 3 {
		t.Errorf("expected same-day rates [2 3], got %v", rc.Values)
	}
}
