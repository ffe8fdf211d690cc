package users

import (
	"context"

	"github.com/dmitrijs2005/accounts/internal/server/models"
)

// Query is a typed search specification. Non-empty fields are matched with
// OR semantics: a user satisfies the query when its name equals Name or its
// login equals Login.
type Query struct {
	Name  string
	Login string
}

// IsEmpty reports whether no criteria are set.
func (q Query) IsEmpty() bool {
	return q.Name == "" && q.Login == ""
}

// Repository is the durable account store. Uniqueness of login and name is
// ultimately enforced by the storage engine; services check first to return
// a friendly conflict, but the store constraint is the invariant.
type Repository interface {
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Search(ctx context.Context, q Query) ([]*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
}
