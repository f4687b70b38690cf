package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

const filesCollection = "files"

type FileRepository struct {
	coll *mongo.Collection
}

func NewFileRepository(db *mongo.Database) *FileRepository {
	return &FileRepository{coll: db.Collection(filesCollection)}
}

type fileDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Path       string             `bson:"path"`
	ProjectID  string             `bson:"project_id"`
	UploadedBy string             `bson:"uploaded_by"`
	Type       string             `bson:"type"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d fileDoc) toDomain() *domain.File {
	return &domain.File{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Path:       d.Path,
		ProjectID:  d.ProjectID,
		UploadedBy: d.UploadedBy,
		Type:       domain.FileType(d.Type),
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

func (r *FileRepository) Create(ctx context.Context, f *domain.File) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fileDoc{
		Name:       f.Name,
		Path:       f.Path,
		ProjectID:  f.ProjectID,
		UploadedBy: f.UploadedBy,
		Type:       string(f.Type),
		CreatedAt:  time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert file record: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFileNotFound
	}

	var doc fileDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FileRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.File
	for cur.Next(ctx) {
		var doc fileDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode file: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// ListPaths returns the storage names of every live file record, for the
// orphan sweep.
func (r *FileRepository) ListPaths(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"path": 1}))
	if err != nil {
		return nil, fmt.Errorf("list file paths: %w", err)
	}
	defer cur.Close(ctx)

	paths := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc struct {
			Path string `bson:"path"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode file path: %w", err)
		}
		paths[doc.Path] = struct{}{}
	}
	return paths, cur.Err()
}

// EnsureIndexes creates the parent-project index.
func (r *FileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}},
	})
	return err
}
