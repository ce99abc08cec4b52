package postgresql

import (
	"context"
	"fmt"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/contact"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
)

type contactRepository struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) contact.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return contact.Contact{}, fmt.Errorf("failed to generate contact id: %w", err)
	}

	var created contact.Contact
	err = q.QueryRow(ctx, `
		INSERT INTO contacts (id, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, email, message, created_at
	`, id.String(), c.Email, c.Message).Scan(&created.ID, &created.Email, &created.Message, &created.CreatedAt)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return created, nil
}

func (r *contactRepository) List(ctx context.Context, page pagination.Params) ([]contact.Contact, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, email, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]contact.Contact, 0)
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, total, nil
}
