package client

import (
	"context"
	"time"

	"jzf-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, id string, c *Client) error
	Delete(ctx context.Context, id string) error
}

type ClientRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewClientRepository(mongodb *database.MongodbDB) ClientRepository {
	return &ClientRepositoryImpl{
		Collection: mongodb.DB.Collection("clients"),
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, c *Client) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, c)
	return err
}

func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id string) (*Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var c Client
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepositoryImpl) List(ctx context.Context) ([]Client, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, id string, c *Client) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":                 c.Name,
		"company":              c.Company,
		"cnpj":                 c.CNPJ,
		"email":                c.Email,
		"phone":                c.Phone,
		"status":               c.Status,
		"tax_regime":           c.TaxRegime,
		"cnaes":                c.CNAEs,
		"keywords":             c.Keywords,
		"business_description": c.BusinessDescription,
		"updated_at":           time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
