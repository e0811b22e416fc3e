package store_test

import (
	"strings"
	"testing"

	"clinic-booking-api/internal/store"
)

func TestFilterPresentAndAbsent(t *testing.T) {
	q := store.NewQuery(`SELECT a.id FROM appointments a JOIN users u ON a.user_id = u.id WHERE 1=1`).
		Eq("a.status", "confirmed").
		Eq("a.appointment_date", "").
		Search("ana", "u.full_name", "u.email").
		Suffix(`ORDER BY a.appointment_date DESC`)

	args := q.Args()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
	if args[0] != "confirmed" {
		t.Errorf("first arg: got %v", args[0])
	}
	if args[1] != "%ana%" {
		t.Errorf("second arg: got %v", args[1])
	}

	sql := q.SQL()
	if n := strings.Count(sql, " AND "); n != 2 {
		t.Errorf("expected 2 AND clauses, got %d in %q", n, sql)
	}
	statusIdx := strings.Index(sql, "a.status = $1")
	searchIdx := strings.Index(sql, "u.full_name ILIKE $2")
	if statusIdx < 0 || searchIdx < 0 {
		t.Fatalf("missing clauses in %q", sql)
	}
	if statusIdx > searchIdx {
		t.Errorf("status clause should come before search clause: %q", sql)
	}
	if !strings.HasSuffix(sql, "ORDER BY a.appointment_date DESC") {
		t.Errorf("order clause should be last: %q", sql)
	}
}

func TestFilterAllAbsent(t *testing.T) {
	base := `SELECT id FROM inquiries WHERE 1=1`
	q := store.NewQuery(base).Eq("status", "").Search("", "name", "email")

	if q.SQL() != base {
		t.Errorf("absent filters must not touch the query: %q", q.SQL())
	}
	if len(q.Args()) != 0 {
		t.Errorf("absent filters must not bind args: %v", q.Args())
	}
}

func TestFilterContinuesNumbering(t *testing.T) {
	q := store.NewQuery(`SELECT id FROM appointments a WHERE a.user_id = $1`, "some-uid").
		Eq("a.status", "pending")

	if !strings.Contains(q.SQL(), "a.status = $2") {
		t.Errorf("expected numbering to continue after base args: %q", q.SQL())
	}
	if len(q.Args()) != 2 {
		t.Fatalf("expected 2 args, got %v", q.Args())
	}
	if q.Args()[1] != "pending" {
		t.Errorf("second arg: got %v", q.Args()[1])
	}
}

func TestFilterSearchSharesOneParam(t *testing.T) {
	q := store.NewQuery(`SELECT id FROM users u WHERE u.role = 'client'`).
		Search("smith", "u.full_name", "u.email")

	if len(q.Args()) != 1 {
		t.Fatalf("search over multiple columns must bind one arg, got %v", q.Args())
	}
	sql := q.SQL()
	if !strings.Contains(sql, "(u.full_name ILIKE $1 OR u.email ILIKE $1)") {
		t.Errorf("unexpected search clause: %q", sql)
	}
}

func TestFilterValuesNeverInSQL(t *testing.T) {
	hostile := "x'; DROP TABLE users; --"
	q := store.NewQuery(`SELECT id FROM appointments a WHERE 1=1`).
		Eq("a.status", hostile).
		Search(hostile, "a.notes")

	if strings.Contains(q.SQL(), "DROP TABLE") {
		t.Fatalf("raw value leaked into query text: %q", q.SQL())
	}
	if len(q.Args()) != 2 {
		t.Fatalf("expected 2 args, got %v", q.Args())
	}
}
