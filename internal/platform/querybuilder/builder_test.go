package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("users").
		Where(Eq("tenant_id", "t1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM users WHERE tenant_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("id", "name").
		Values("u1", "name-1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "name-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ILikeOffsetAndSuffix(t *testing.T) {
	query, args, err := Select("public_id", "title").
		From("courses").
		Where(Eq("is_published", true), ILike("50%_off", "title")).
		OrderBy("created_at DESC").
		Limit(8).
		Offset(16).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, title FROM courses WHERE is_published = $1 AND title ILIKE $2 ORDER BY created_at DESC LIMIT 8 OFFSET 16 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != `%50\%\_off%` {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("wishlists").
		Where(Eq("user_id", "u1"), Eq("course_public_id", "c1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM wishlists WHERE user_id = $1 AND course_public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("wishlists").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where clause")
	}
}

func TestExprCondition_RewritesPlaceholders(t *testing.T) {
	query, args, err := Update("coupons").
		SetExpr("current_uses", "current_uses + 1").
		Where(Eq("public_id", "cp1"), Expr("current_uses < max_uses AND (valid_until IS NULL OR valid_until >= ?)", "2026-01-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE coupons SET current_uses = current_uses + 1 WHERE public_id = $1 AND current_uses < max_uses AND (valid_until IS NULL OR valid_until >= $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "2026-01-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestILike_MultipleColumnsAndEmptyIn(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").
		From("profiles").
		Where(Eq("role", "student"), ILike("ada", "full_name", "email"), In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM profiles WHERE role = $1 AND (full_name ILIKE $2 OR email ILIKE $3) AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "%ada%" || args[2] != "%ada%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRows(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("lessons").
		Columns("course_id", "title").
		Values(1, "Intro").
		Values(1).
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestSelectBuilder_GroupBy(t *testing.T) {
	t.Parallel()

	query, args, err := Select("course_id", "COALESCE(SUM(amount), 0) AS amount").
		From("payments").
		Where(In("course_id", []any{"c1", "c2"}), Eq("status", "completed")).
		GroupBy("course_id").
		OrderBy("course_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT course_id, COALESCE(SUM(amount), 0) AS amount FROM payments WHERE course_id IN ($1, $2) AND status = $3 GROUP BY course_id ORDER BY course_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "completed" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
