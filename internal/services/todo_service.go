package services

import (
	"database/sql"

	"github.com/avelar-dev/taskcast-be/internal/models"
)

// TodoInput carries the mutable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoServiceProvider defines the interface for todo services.
type TodoServiceProvider interface {
	ListByOwner(ownerID int64) ([]models.Todo, error)
	Get(id, ownerID int64) (models.Todo, error)
	Create(in TodoInput, ownerID int64) (models.Todo, error)
	Update(id, ownerID int64, in TodoInput) error
	Delete(id, ownerID int64) error
	ListAll() ([]models.Todo, error)
	DeleteAny(id int64) error
}

// TodoService provides business logic for todos. Every non-admin
// operation filters by owner as well as id, so a foreign todo and a
// missing todo are indistinguishable to the caller.
type TodoService struct {
	db *sql.DB
}

// NewTodoService creates a new TodoService.
func NewTodoService(db *sql.DB) *TodoService {
	return &TodoService{db: db}
}

// ListByOwner retrieves all todos owned by a user.
func (s *TodoService) ListByOwner(ownerID int64) ([]models.Todo, error) {
	rows, err := s.db.Query(
		"SELECT id, title, description, priority, complete, owner_id FROM todos WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTodos(rows)
}

// Get retrieves a single todo by id, scoped to its owner.
func (s *TodoService) Get(id, ownerID int64) (models.Todo, error) {
	row := s.db.QueryRow(
		"SELECT id, title, description, priority, complete, owner_id FROM todos WHERE id = ? AND owner_id = ?", id, ownerID)

	var t models.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Todo{}, ErrNotFound
		}
		return models.Todo{}, err
	}
	return t, nil
}

// Create inserts a new todo for the given owner.
func (s *TodoService) Create(in TodoInput, ownerID int64) (models.Todo, error) {
	res, err := s.db.Exec(
		"INSERT INTO todos(title, description, priority, complete, owner_id) VALUES(?, ?, ?, ?, ?)",
		in.Title, in.Description, in.Priority, in.Complete, ownerID)
	if err != nil {
		return models.Todo{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, err
	}

	return models.Todo{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     ownerID,
	}, nil
}

// Update replaces the mutable fields of a todo, scoped to its owner.
// Last write wins; there is no row locking.
func (s *TodoService) Update(id, ownerID int64, in TodoInput) error {
	res, err := s.db.Exec(
		"UPDATE todos SET title = ?, description = ?, priority = ?, complete = ? WHERE id = ? AND owner_id = ?",
		in.Title, in.Description, in.Priority, in.Complete, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a todo, scoped to its owner.
func (s *TodoService) Delete(id, ownerID int64) error {
	res, err := s.db.Exec("DELETE FROM todos WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListAll retrieves every todo regardless of owner. Admin only.
func (s *TodoService) ListAll() ([]models.Todo, error) {
	rows, err := s.db.Query(
		"SELECT id, title, description, priority, complete, owner_id FROM todos ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTodos(rows)
}

// DeleteAny removes a todo unconditionally. Admin only.
func (s *TodoService) DeleteAny(id int64) error {
	res, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanTodos(rows *sql.Rows) ([]models.Todo, error) {
	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
