package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightpaths/org-system/internal/core/domain"
)

const collectionRequests = "promotion_requests"

type PromotionRequestRepository struct {
	col *mongo.Collection
}

func NewPromotionRequestRepository(db *mongo.Database) *PromotionRequestRepository {
	return &PromotionRequestRepository{col: db.Collection(collectionRequests)}
}

// CreatePending inserts a new pending request. The unique partial index on
// (target_user_id, requested_role) where status == pending makes the insert
// an atomic check-and-insert: two concurrent callers cannot both succeed.
func (r *PromotionRequestRepository) CreatePending(ctx context.Context, req *domain.PromotionRequest) (*domain.PromotionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

func (r *PromotionRequestRepository) FindByID(ctx context.Context, id string) (*domain.PromotionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.PromotionRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *PromotionRequestRepository) ExistsPending(ctx context.Context, targetUserID string, role domain.Role) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{
		"target_user_id": targetUserID,
		"requested_role": role,
		"status":         domain.StatusPending,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompareAndSetStatus atomically transitions the request from `from` to `to`
// and returns the document as it was before the transition. A request that is
// absent or no longer in `from` fails with domain.ErrRequestNotFound, so a
// second concurrent resolution can never re-apply.
func (r *PromotionRequestRepository) CompareAndSetStatus(ctx context.Context, id string, from, to domain.RequestStatus, adminNotes string) (*domain.PromotionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": to, "updated_at": time.Now().UTC()}
	if adminNotes != "" {
		set["admin_notes"] = adminNotes
	}

	var before domain.PromotionRequest
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &before, nil
}

func (r *PromotionRequestRepository) ListPending(ctx context.Context) ([]*domain.PromotionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"status": domain.StatusPending},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []*domain.PromotionRequest
	for cur.Next(ctx) {
		var req domain.PromotionRequest
		if err := cur.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}
	return requests, cur.Err()
}

// EnsureIndexes creates necessary indexes on the promotion_requests
// collection, including the partial unique index backing the atomic
// duplicate-request guard.
func (r *PromotionRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "target_user_id", Value: 1},
				{Key: "requested_role", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.StatusPending)}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
