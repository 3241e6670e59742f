package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

// Repository defines the interface for incident storage.
type Repository interface {
	Insert(ctx context.Context, record models.IncidentRecord) (string, error)
	ListRaw(ctx context.Context) ([]map[string]any, error)
	Delete(ctx context.Context, id string) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository and verifies the
// connection with a ping.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "incidents",
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

// Insert stores a new incident and returns its assigned identifier.
func (r *MongoDBRepository) Insert(ctx context.Context, record models.IncidentRecord) (string, error) {
	doc := bson.M{
		"description": record.Description,
		"category":    string(record.Category),
		"anonymous":   record.IsAnonymous,
	}
	if record.Location != nil {
		doc["location"] = bson.M{
			"latitude":  record.Location.Latitude,
			"longitude": record.Location.Longitude,
		}
	}
	if record.CreatedAt != nil {
		doc["created_at"] = *record.CreatedAt
	}
	if !record.IsAnonymous {
		if record.ContactNumber != "" {
			doc["contact_number"] = record.ContactNumber
		}
		if record.Reporter != nil {
			doc["reporter"] = bson.M{
				"uid":   record.Reporter.UID,
				"name":  record.Reporter.Name,
				"email": record.Reporter.Email,
			}
		}
	}

	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert incident: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprint(res.InsertedID), nil
	}
	return oid.Hex(), nil
}

// ListRaw bulk-reads every incident document as a loosely typed map in
// ascending creation order. Filtering and aggregation happen client-side.
func (r *MongoDBRepository) ListRaw(ctx context.Context) ([]map[string]any, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode incidents: %w", err)
	}

	raw := make([]map[string]any, len(docs))
	for i, doc := range docs {
		raw[i] = map[string]any(doc)
	}
	return raw, nil
}

// Delete removes one incident by its hex identifier.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid incident id %q: %w", id, err)
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete incident %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
