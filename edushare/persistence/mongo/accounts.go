package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var _ domain.AccountRepository = (*Store)(nil)

// accountDoc is the persisted shape of a domain.Account.
type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash []byte    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// CreateAccount inserts the account; the unique email index turns duplicate
// signups into a conflict.
func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	doc := accountDoc{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}

	if _, err := s.accounts.InsertOne(ctx, doc); err != nil {
		return translate(err, "failed to create account for %s", a.Email)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "account %s not found", id)
	}
	return doc.toDomain(), nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "no account for email %s", email)
	}
	return doc.toDomain(), nil
}
