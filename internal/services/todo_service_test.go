package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/avelar-dev/taskcast-be/internal/models"
)

func seedUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users(email, username, first_name, last_name, hashed_pass, is_active, role) VALUES(?, ?, '', '', 'x', 1, 'user')",
		username+"@example.com", username)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return id
}

func TestTodoRoundTrip(t *testing.T) {
	db := newTodoDB(t)
	svc := NewTodoService(db)
	owner := seedUser(t, db, "ana")

	in := TodoInput{Title: "Buy milk", Description: "2% lowfat", Priority: 5, Complete: false}
	created, err := svc.Create(in, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.OwnerID != owner {
		t.Errorf("owner id = %d, want %d", created.OwnerID, owner)
	}

	got, err := svc.Get(created.ID, owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Errorf("read back %+v, want %+v", got, created)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	db := newTodoDB(t)
	svc := NewTodoService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	todo, err := svc.Create(TodoInput{Title: "Secret plan", Description: "do not tell bob", Priority: 1}, alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Bob's read, update and delete must all report not-found,
	// exactly as if the todo did not exist.
	if _, err := svc.Get(todo.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
	if err := svc.Update(todo.ID, bob, TodoInput{Title: "Hijacked", Description: "oops", Priority: 2}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(todo.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}

	// Alice still sees it untouched.
	got, err := svc.Get(todo.ID, alice)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if got.Title != "Secret plan" {
		t.Errorf("title = %q, want %q", got.Title, "Secret plan")
	}

	bobTodos, err := svc.ListByOwner(bob)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(bobTodos) != 0 {
		t.Errorf("bob sees %d todos, want 0", len(bobTodos))
	}
}

func TestUpdateInPlace(t *testing.T) {
	db := newTodoDB(t)
	svc := NewTodoService(db)
	owner := seedUser(t, db, "ana")

	todo, err := svc.Create(TodoInput{Title: "Draft", Description: "first pass", Priority: 3}, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Update(todo.ID, owner, TodoInput{Title: "Final", Description: "all done", Priority: 9, Complete: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(todo.ID, owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := models.Todo{ID: todo.ID, Title: "Final", Description: "all done", Priority: 9, Complete: true, OwnerID: owner}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDeleteMissingTodoIsIdempotent(t *testing.T) {
	db := newTodoDB(t)
	svc := NewTodoService(db)
	owner := seedUser(t, db, "ana")

	for i := 0; i < 2; i++ {
		if err := svc.Delete(42, owner); !errors.Is(err, ErrNotFound) {
			t.Errorf("attempt %d: err = %v, want ErrNotFound", i+1, err)
		}
		if err := svc.DeleteAny(42); !errors.Is(err, ErrNotFound) {
			t.Errorf("attempt %d: DeleteAny err = %v, want ErrNotFound", i+1, err)
		}
	}
}

func TestAdminOverride(t *testing.T) {
	db := newTodoDB(t)
	svc := NewTodoService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Create(TodoInput{Title: "Alice task", Description: "for alice", Priority: 1}, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}
	bobTodo, err := svc.Create(TodoInput{Title: "Bob task", Description: "for bob", Priority: 2}, bob)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListAll returned %d todos, want 2", len(all))
	}

	if err := svc.DeleteAny(bobTodo.ID); err != nil {
		t.Fatalf("DeleteAny: %v", err)
	}
	if _, err := svc.Get(bobTodo.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Error("todo still present after admin delete")
	}
}
