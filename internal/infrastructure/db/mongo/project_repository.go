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

const (
	projectsCollection = "projects"
	invoicesCollection = "invoices"
)

type ProjectRepository struct {
	projects *mongo.Collection
	invoices *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		projects: db.Collection(projectsCollection),
		invoices: db.Collection(invoicesCollection),
	}
}

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	ClientID    string             `bson:"client_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.ProjectStatus(d.Status),
		ClientID:    d.ClientID,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type invoiceDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID string             `bson:"project_id"`
	Amount    float64            `bson:"amount"`
	Status    string             `bson:"status"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d invoiceDoc) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:        d.ID.Hex(),
		ProjectID: d.ProjectID,
		Amount:    d.Amount,
		Status:    domain.InvoiceStatus(d.Status),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		ClientID:    p.ClientID,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := r.projects.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a project. A non-empty clientID scopes the query to
// that owner, so a non-owned project reads as not found.
func (r *ProjectRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot name any project.
		return nil, domain.ErrProjectNotFound
	}

	filter := bson.M{"_id": oid}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	var doc projectDoc
	if err := r.projects.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, clientID string) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	cur, err := r.projects.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var doc projectDoc
	err = r.projects.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return doc.toDomain(), nil
}

// UpsertInvoice relies on the store's atomic upsert plus the unique
// project_id index: concurrent upserts for the same project converge on
// one row with the latest values, no check-then-write race.
func (r *ProjectRepository) UpsertInvoice(ctx context.Context, projectID string, amount float64, status domain.InvoiceStatus) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// The equality filter populates project_id on insert; naming it in
	// $setOnInsert as well would conflict.
	update := bson.M{
		"$set": bson.M{
			"amount":     amount,
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		},
	}

	var doc invoiceDoc
	err := r.invoices.FindOneAndUpdate(
		ctx,
		bson.M{"project_id": projectID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert invoice: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindInvoiceByProject(ctx context.Context, projectID string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceDoc
	if err := r.invoices.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the owner index on projects and the unique
// invoice-per-project index.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	}); err != nil {
		return err
	}

	_, err := r.invoices.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
