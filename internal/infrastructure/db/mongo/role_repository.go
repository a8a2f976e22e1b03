package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-service/internal/core/domain"
)

type RoleRepository struct {
	roles  *mongo.Collection
	access *mongo.Collection
	db     *mongo.Database
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		roles:  db.Collection(rolesCollection),
		access: db.Collection(roleAccessCollection),
		db:     db,
	}
}

func getRoleAccess(ctx context.Context, db *mongo.Database, roleID int64) (*domain.RoleAccess, error) {
	var doc accessDoc
	if err := db.Collection(roleAccessCollection).FindOne(ctx, bson.M{"role_id": roleID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role access: %w", err)
	}
	return &doc.RoleAccess, nil
}

// ListWithPermissions returns roles ordered by id. Roles without an access
// document are left out.
func (r *RoleRepository) ListWithPermissions(ctx context.Context) ([]domain.RoleWithAccess, error) {
	cur, err := r.access.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list role access: %w", err)
	}
	var docs []accessDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list role access: %w", err)
	}
	byRole := make(map[int64]domain.RoleAccess, len(docs))
	for _, d := range docs {
		byRole[d.RoleID] = d.RoleAccess
	}

	cur, err = r.roles.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var roles []roleDoc
	if err := cur.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	out := make([]domain.RoleWithAccess, 0, len(roles))
	for _, role := range roles {
		access, ok := byRole[role.ID]
		if !ok {
			continue
		}
		out = append(out, domain.RoleWithAccess{
			Role:        domain.Role{ID: role.ID, Name: role.Name},
			Permissions: access,
		})
	}
	return out, nil
}

func (r *RoleRepository) GetPermissions(ctx context.Context, roleID int64) (*domain.RoleAccess, error) {
	return getRoleAccess(ctx, r.db, roleID)
}

func (r *RoleRepository) UpdatePermissions(ctx context.Context, roleID int64, access domain.RoleAccess) (*domain.RoleAccess, error) {
	res, err := r.access.UpdateOne(ctx, bson.M{"role_id": roleID}, bson.M{"$set": access})
	if err != nil {
		return nil, fmt.Errorf("update role access: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return &access, nil
}
