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
	"github.com/ventascrm/sales-api/internal/core/ports"
)

const collectionOrders = "pedidos"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoLineItem struct {
	ProductID string  `bson:"id"`
	Quantity  int     `bson:"cantidad"`
	Name      string  `bson:"nombre"`
	Price     float64 `bson:"precio"`
}

type mongoOrder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Items     []mongoLineItem    `bson:"pedido"`
	Total     float64            `bson:"total"`
	ClientID  primitive.ObjectID `bson:"cliente"`
	SellerID  primitive.ObjectID `bson:"vendedor"`
	Status    string             `bson:"estado"`
	CreatedAt time.Time          `bson:"creado"`
}

func (m *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.LineItem{ProductID: it.ProductID, Quantity: it.Quantity, Name: it.Name, Price: it.Price}
	}
	return &domain.Order{
		ID:        m.ID.Hex(),
		Items:     items,
		Total:     m.Total,
		ClientID:  hexOrEmpty(m.ClientID),
		SellerID:  hexOrEmpty(m.SellerID),
		Status:    domain.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toMongoItems(items []domain.LineItem) []mongoLineItem {
	out := make([]mongoLineItem, len(items))
	for i, it := range items {
		out[i] = mongoLineItem{ProductID: it.ProductID, Quantity: it.Quantity, Name: it.Name, Price: it.Price}
	}
	return out
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	client, ok := objectID(o.ClientID)
	if !ok {
		return nil, fmt.Errorf("insert order: invalid client id %q", o.ClientID)
	}
	seller, ok := objectID(o.SellerID)
	if !ok {
		return nil, fmt.Errorf("insert order: invalid seller id %q", o.SellerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		ID:        primitive.NewObjectID(),
		Items:     toMongoItems(o.Items),
		Total:     o.Total,
		ClientID:  client,
		SellerID:  seller,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	q := bson.M{}
	if filter.SellerID != "" {
		seller, ok := objectID(filter.SellerID)
		if !ok {
			return []*domain.Order{}, nil
		}
		q["vendedor"] = seller
	}
	if filter.Status != "" {
		q["estado"] = string(filter.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(byCreation))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	set := bson.M{}
	if patch.Items != nil {
		set["pedido"] = toMongoItems(*patch.Items)
	}
	if patch.Total != nil {
		set["total"] = *patch.Total
	}
	if patch.ClientID != nil {
		client, ok := objectID(*patch.ClientID)
		if !ok {
			return nil, fmt.Errorf("update order: invalid client id %q", *patch.ClientID)
		}
		set["cliente"] = client
	}
	if patch.Status != nil {
		set["estado"] = string(*patch.Status)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendedor", Value: 1}, {Key: "estado", Value: 1}}},
		{Keys: bson.D{{Key: "estado", Value: 1}}},
	})
}
