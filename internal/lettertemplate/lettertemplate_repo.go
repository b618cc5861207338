package lettertemplate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "letter_templates"

//go:generate mockgen -source=lettertemplate_repo.go -destination=mock/lettertemplate_repo_mock.go -package=mock
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	FindAll(ctx context.Context, filter ListFilter) ([]LetterTemplate, error)
	FindByName(ctx context.Context, name string) (*LetterTemplate, error)
	FindActiveByType(ctx context.Context, t Type) (*LetterTemplate, error)
	Upsert(ctx context.Context, tpl *LetterTemplate) (*LetterTemplate, error)
	SetActive(ctx context.Context, name string, active bool, at time.Time) (*LetterTemplate, error)
}

type repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) Repository {
	return &repository{coll: coll}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_letter_template_name"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("idx_letter_template_type_active"),
		},
	})
	return err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LetterTemplate, error) {
	query := bson.D{}
	if filter.Type != "" {
		query = append(query, bson.E{Key: "type", Value: filter.Type})
	}
	if filter.Active != nil {
		query = append(query, bson.E{Key: "isActive", Value: *filter.Active})
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	templates := make([]LetterTemplate, 0)
	if err := cur.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*LetterTemplate, error) {
	var tpl LetterTemplate
	if err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindActiveByType returns the most recently updated active template of t.
func (r *repository) FindActiveByType(ctx context.Context, t Type) (*LetterTemplate, error) {
	var tpl LetterTemplate
	err := r.coll.FindOne(ctx,
		bson.D{{Key: "type", Value: t}, {Key: "isActive", Value: true}},
		options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}}),
	).Decode(&tpl)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Upsert matches only unlocked documents. When a locked document holds the
// name the upsert insert collides with the unique index and the driver
// reports a duplicate key error.
func (r *repository) Upsert(ctx context.Context, tpl *LetterTemplate) (*LetterTemplate, error) {
	filter := bson.D{
		{Key: "name", Value: tpl.Name},
		{Key: "isLocked", Value: bson.D{{Key: "$ne", Value: true}}},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "type", Value: tpl.Type},
			{Key: "subject", Value: tpl.Subject},
			{Key: "bodyContent", Value: tpl.BodyContent},
			{Key: "variables", Value: tpl.Variables},
			{Key: "isActive", Value: tpl.IsActive},
			{Key: "isLocked", Value: tpl.IsLocked},
			{Key: "pdfUrl", Value: tpl.PDFURL},
			{Key: "localPath", Value: tpl.LocalPath},
			{Key: "publicId", Value: tpl.PublicID},
			{Key: "resourceType", Value: tpl.ResourceType},
			{Key: "isFixedPdf", Value: tpl.IsFixedPDF},
			{Key: "updatedAt", Value: tpl.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "createdAt", Value: tpl.CreatedAt},
		}},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved LetterTemplate
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *repository) SetActive(ctx context.Context, name string, active bool, at time.Time) (*LetterTemplate, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isActive", Value: active},
		{Key: "updatedAt", Value: at},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved LetterTemplate
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "name", Value: name}}, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
