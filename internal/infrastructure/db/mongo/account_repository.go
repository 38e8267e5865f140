package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

const (
	collectionUsers    = "users"
	collectionCounters = "counters"
	userSequence       = "user_id"
)

// collection is the part of *mongo.Collection the repository uses.
type collection interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	FindOneAndUpdate(ctx context.Context, filter, update any, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// indexer is the part of mongo.IndexView the repository uses.
type indexer interface {
	CreateMany(ctx context.Context, models []mongo.IndexModel, opts ...*options.CreateIndexesOptions) ([]string, error)
}

// AccountRepository stores development-backend accounts. Accounts carry
// sequential int64 ids, allocated from the counters collection.
type AccountRepository struct {
	users    collection
	counters collection
	indexes  indexer
	now      func() time.Time
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	users := db.Collection(collectionUsers)
	return newAccountRepository(users, db.Collection(collectionCounters), users.Indexes())
}

func newAccountRepository(users, counters collection, indexes indexer) *AccountRepository {
	return &AccountRepository{users: users, counters: counters, indexes: indexes, now: time.Now}
}

type mongoAccount struct {
	ID           int64  `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	IsActive     bool   `bson:"is_active"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (m *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    unixToTime(m.CreatedAt),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
}

func (r *AccountRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": userSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return counter.Seq, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	doc := mongoAccount{
		ID:           id,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		IsActive:     account.IsActive,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAccount
	if err := r.users.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// List returns accounts newest first. Search matches name or email,
// case-insensitively.
func (r *AccountRepository) List(ctx context.Context, f domain.AccountFilter) ([]*domain.Account, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"name": pattern}, bson.M{"email": pattern}}
	}

	total, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.Skip))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	out := make([]*domain.Account, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

func (r *AccountRepository) update(ctx context.Context, id int64, set bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = r.now().UTC().Unix()
	var m mongoAccount
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error) {
	return r.update(ctx, id, bson.M{"role": string(role)})
}

func (r *AccountRepository) SetActive(ctx context.Context, id int64, active bool) (*domain.Account, error) {
	return r.update(ctx, id, bson.M{"is_active": active})
}

// Delete removes an account for good.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AccountRepository) Stats(ctx context.Context) (domain.AccountStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.AccountStats
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&s.TotalUsers, bson.M{}},
		{&s.ActiveUsers, bson.M{"is_active": true}},
		{&s.SuspendedUsers, bson.M{"is_active": false}},
		{&s.AdminUsers, bson.M{"role": string(domain.RoleAdmin)}},
	}
	for _, c := range counts {
		n, err := r.users.CountDocuments(ctx, c.filter)
		if err != nil {
			return s, fmt.Errorf("count users: %w", err)
		}
		*c.dst = n
	}
	return s, nil
}

// EnsureIndexes creates the unique email index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.indexes.CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
