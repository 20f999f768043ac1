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

	"github.com/ventascrm/sales-api/internal/core/domain"
)

const collectionClients = "clientes"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"nombre"`
	Surname   string             `bson:"apellido"`
	Company   string             `bson:"empresa"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"telefono,omitempty"`
	SellerID  primitive.ObjectID `bson:"vendedor"`
	CreatedAt time.Time          `bson:"creado"`
}

func (m *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Surname:   m.Surname,
		Company:   m.Company,
		Email:     m.Email,
		Phone:     m.Phone,
		SellerID:  hexOrEmpty(m.SellerID),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seller, ok := objectID(c.SellerID)
	if !ok {
		return nil, fmt.Errorf("insert client: invalid seller id %q", c.SellerID)
	}
	doc := mongoClient{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Surname:   c.Surname,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		SellerID:  seller,
		CreatedAt: c.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
}

func (r *ClientRepository) List(ctx context.Context, sellerID string) ([]*domain.Client, error) {
	filter := bson.M{}
	if sellerID != "" {
		seller, ok := objectID(sellerID)
		if !ok {
			return []*domain.Client{}, nil
		}
		filter["vendedor"] = seller
	}
	return r.find(ctx, filter)
}

func (r *ClientRepository) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	set := bson.M{}
	if patch.Name != nil {
		set["nombre"] = *patch.Name
	}
	if patch.Surname != nil {
		set["apellido"] = *patch.Surname
	}
	if patch.Company != nil {
		set["empresa"] = *patch.Company
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["telefono"] = *patch.Phone
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoClient
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrClientNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, domain.ErrClientExists
	case err != nil:
		return nil, fmt.Errorf("update client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoClient
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) find(ctx context.Context, filter bson.M) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(byCreation))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	var docs []mongoClient
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	out := make([]*domain.Client, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendedor", Value: 1}}},
	})
}
