package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sponsorRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewSponsorRepository(db *mongo.Database, cache CacheService) interfaces.SponsorRepository {
	return &sponsorRepository{
		collection: db.Collection("sponsors"),
		cache:      cache,
	}
}

func (r *sponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	sponsor.ID = primitive.NewObjectID()
	sponsor.Email = strings.ToLower(strings.TrimSpace(sponsor.Email))
	sponsor.IsActive = true
	sponsor.CreatedAt = time.Now()
	sponsor.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, sponsor)
	if err != nil {
		return apperrors.NewUpstreamError("create sponsor", err)
	}

	return nil
}

func (r *sponsorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsor, error) {
	// Try cache first
	if r.cache != nil {
		var sponsor models.Sponsor
		if err := r.cache.Get(ctx, sponsorCacheKey(id.Hex()), &sponsor); err == nil {
			return &sponsor, nil
		}
	}

	var sponsor models.Sponsor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sponsor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("sponsor", id.Hex())
		}
		return nil, apperrors.NewUpstreamError("get sponsor", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, sponsorCacheKey(id.Hex()), sponsor, utils.SponsorCacheTTL)
	}

	return &sponsor, nil
}

func (r *sponsorRepository) GetByEmail(ctx context.Context, email string) (*models.Sponsor, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var sponsor models.Sponsor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&sponsor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("sponsor", email)
		}
		return nil, apperrors.NewUpstreamError("get sponsor by email", err)
	}

	return &sponsor, nil
}

func (r *sponsorRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return apperrors.NewUpstreamError("update sponsor", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFoundError("sponsor", id.Hex())
	}

	if r.cache != nil {
		r.cache.Delete(ctx, sponsorCacheKey(id.Hex()))
	}

	return nil
}

func (r *sponsorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Sponsor, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"name", "email", "phone"})
		if len(searchFilter) > 0 {
			filter = searchFilter
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("count sponsors", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("list sponsors", err)
	}
	defer cursor.Close(ctx)

	var sponsors []*models.Sponsor
	for cursor.Next(ctx) {
		var sponsor models.Sponsor
		if err := cursor.Decode(&sponsor); err != nil {
			return nil, 0, apperrors.NewUpstreamError("decode sponsor", err)
		}
		sponsors = append(sponsors, &sponsor)
	}

	return sponsors, total, nil
}

func (r *sponsorRepository) GetAll(ctx context.Context) ([]*models.Sponsor, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, apperrors.NewUpstreamError("list sponsors", err)
	}
	defer cursor.Close(ctx)

	var sponsors []*models.Sponsor
	for cursor.Next(ctx) {
		var sponsor models.Sponsor
		if err := cursor.Decode(&sponsor); err != nil {
			return nil, apperrors.NewUpstreamError("decode sponsor", err)
		}
		sponsors = append(sponsors, &sponsor)
	}

	return sponsors, nil
}

func (r *sponsorRepository) GetTotalCount(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewUpstreamError("count sponsors", err)
	}
	return count, nil
}

func sponsorCacheKey(id string) string {
	return fmt.Sprintf(utils.CacheKeySponsor, id)
}
