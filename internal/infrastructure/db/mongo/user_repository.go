package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-service/internal/core/domain"
)

type userDoc struct {
	ID             int64     `bson:"_id"`
	Username       string    `bson:"username"`
	FullName       string    `bson:"full_name,omitempty"`
	Email          string    `bson:"email,omitempty"`
	RegisteredDate time.Time `bson:"registered_date"`
	HashedPassword string    `bson:"hashed_password"`
	RoleID         int64     `bson:"role_id"`
	IsActive       *bool     `bson:"is_active,omitempty"`
}

func (d userDoc) toDomain(roleName string) *domain.User {
	return &domain.User{
		ID:             d.ID,
		Username:       d.Username,
		FullName:       d.FullName,
		Email:          d.Email,
		RegisteredDate: d.RegisteredDate.UTC(),
		HashedPassword: d.HashedPassword,
		RoleID:         d.RoleID,
		Role:           roleName,
		IsActive:       d.IsActive != nil && *d.IsActive,
	}
}

type UserRepository struct {
	db    *mongo.Database
	users *mongo.Collection
	roles *mongo.Collection
	log   zerolog.Logger
	now   func() time.Time
}

func NewUserRepository(db *mongo.Database, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:    db,
		users: db.Collection(usersCollection),
		roles: db.Collection(rolesCollection),
		log:   log,
		now:   time.Now,
	}
}

func (r *UserRepository) Add(ctx context.Context, reg domain.Registration, hashedPassword string, isAdmin bool) (*domain.User, error) {
	roleName := domain.RoleUser
	if isAdmin {
		roleName = domain.RoleAdmin
	}

	var role roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"name": roleName}).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoleNotFound, roleName)
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	id, err := nextID(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}

	active := true
	doc := userDoc{
		ID:             id,
		Username:       reg.Username,
		FullName:       reg.FullName,
		Email:          reg.Email,
		RegisteredDate: r.now().UTC().Truncate(time.Millisecond),
		HashedPassword: hashedPassword,
		RoleID:         role.ID,
		IsActive:       &active,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(role.Name), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var role roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"_id": doc.RoleID}).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrRoleNotFound, doc.ID)
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(role.Name), nil
}

// List returns every user ordered by id. Documents that cannot be decoded,
// reference an unknown role or fail validation are skipped and logged.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	roleNames, err := r.roleNames(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*domain.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			r.log.Warn().Err(err).Msg("skipping unreadable user document")
			continue
		}
		user := doc.toDomain(roleNames[doc.RoleID])
		if err := user.Validate(); err != nil {
			r.log.Warn().Err(err).Int64("user_id", doc.ID).Msg("skipping invalid user document")
			continue
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) roleNames(ctx context.Context) (map[int64]string, error) {
	cur, err := r.roles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var roles []roleDoc
	if err := cur.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	names := make(map[int64]string, len(roles))
	for _, role := range roles {
		names[role.ID] = role.Name
	}
	return names, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetPermissions(ctx context.Context, userID int64) (map[string]bool, error) {
	var doc userDoc
	err := r.users.FindOne(ctx, bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"role_id": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user role: %w", err)
	}

	access, err := getRoleAccess(ctx, r.db, doc.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	return access.Map(), nil
}
