package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sgsm/taskboard/internal/core/domain"
)

const collectionMemberships = "project_members"

// MembershipRepository implements ports.MembershipDirectory using MongoDB.
// A unique (user_id, project_id) index enforces one membership per pair.
type MembershipRepository struct {
	col *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{col: db.Collection(collectionMemberships)}
}

func pairFilter(userID, projectID string) bson.M {
	return bson.M{"user_id": userID, "project_id": projectID}
}

func (r *MembershipRepository) MembershipOf(ctx context.Context, userID, projectID string) (domain.ProjectRole, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Membership
	err := r.col.FindOne(ctx, pairFilter(userID, projectID)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find membership: %w", err)
	}
	return m.Role, true, nil
}

func (r *MembershipRepository) ExistsMember(ctx context.Context, userID, projectID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, pairFilter(userID, projectID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count membership: %w", err)
	}
	return n > 0, nil
}

func (r *MembershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrMembershipExists
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, userID, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, pairFilter(userID, projectID))
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Membership, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MembershipRepository) DeleteByProject(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"project_id": projectID}); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func (r *MembershipRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func (r *MembershipRepository) list(ctx context.Context, filter bson.M) ([]*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}, {Key: "user_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	out := []*domain.Membership{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode memberships: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique pair index and the per-user lookup index.
func (r *MembershipRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "project_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
