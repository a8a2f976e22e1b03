package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-service/internal/core/domain"
)

const (
	usersCollection      = "users"
	rolesCollection      = "roles"
	roleAccessCollection = "role_access"
	countersCollection   = "counters"
)

type roleDoc struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

type accessDoc struct {
	RoleID            int64 `bson:"role_id"`
	domain.RoleAccess `bson:",inline"`
}

var seedRoles = []struct {
	role   roleDoc
	access domain.RoleAccess
}{
	{role: roleDoc{ID: 1, Name: domain.RoleUser}},
	{role: roleDoc{ID: 2, Name: domain.RoleAdmin}, access: domain.FullAccess()},
}

// EnsureSchema creates the unique indexes and inserts the user and admin roles
// when they are missing. Existing role flags are left untouched.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string]mongo.IndexModel{
		usersCollection: {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		rolesCollection: {
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		roleAccessCollection: {
			Keys:    bson.D{{Key: "role_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("create %s index: %w", coll, err)
		}
	}

	upsert := options.Update().SetUpsert(true)
	for _, s := range seedRoles {
		_, err := db.Collection(rolesCollection).UpdateOne(ctx,
			bson.M{"_id": s.role.ID},
			bson.M{"$setOnInsert": bson.M{"name": s.role.Name}},
			upsert,
		)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", s.role.Name, err)
		}
		_, err = db.Collection(roleAccessCollection).UpdateOne(ctx,
			bson.M{"role_id": s.role.ID},
			bson.M{"$setOnInsert": s.access},
			upsert,
		)
		if err != nil {
			return fmt.Errorf("seed role access %s: %w", s.role.Name, err)
		}
	}
	return nil
}

// nextID hands out monotonically increasing integer ids per sequence name.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return out.Seq, nil
}
