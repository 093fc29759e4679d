package document

import (
	"context"
	"fmt"
	"time"

	"jzf-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mutator validates the guard against the current aggregate and applies the
// transition in memory. It returns the audit action text for the transition.
// Returning an error aborts the operation with no write.
type Mutator func(doc *Document) (action string, err error)

// DocumentStore owns the document aggregate: the instance plus its roster,
// signatures and audit log are always read and written as one unit. The
// audit append happens in the same write as the mutation.
type DocumentStore interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	ApplyTransition(ctx context.Context, id string, actorName string, mutate Mutator) (*Document, error)
	ListByClient(ctx context.Context, clientID string) ([]Document, error)
	ListUpdatedSince(ctx context.Context, clientIDs []string, since time.Time) ([]Document, error)
}

type DocumentStoreImpl struct {
	Collection *mongo.Collection
}

func NewDocumentStore(mongodb *database.MongodbDB) DocumentStore {
	return &DocumentStoreImpl{
		Collection: mongodb.DB.Collection("documents"),
	}
}

func (r *DocumentStoreImpl) Create(ctx context.Context, doc *Document) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now()
	}
	if doc.RequiredSignatories == nil {
		doc.RequiredSignatories = []RequiredSignatory{}
	}
	if doc.Signatures == nil {
		doc.Signatures = []Signature{}
	}
	if doc.AuditLog == nil {
		doc.AuditLog = []AuditEntry{}
	}
	doc.Revision = 1

	_, err := r.Collection.InsertOne(ctx, doc)
	return err
}

func (r *DocumentStoreImpl) GetByID(ctx context.Context, id string) (*Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc Document
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ApplyTransition performs the read-validate-write cycle for one transition.
// The aggregate lives in a single collection document, so the audit append
// and the mutation commit together. A revision compare-and-swap serializes
// concurrent transitions on the same document: a writer whose snapshot went
// stale re-reads and re-validates, so a guard invalidated by an earlier
// concurrent commit surfaces as the mutator's own error, never as a silent
// overwrite.
func (r *DocumentStoreImpl) ApplyTransition(ctx context.Context, id string, actorName string, mutate Mutator) (*Document, error) {
	const maxAttempts = 3

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		var doc Document
		err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, err
		}

		action, err := mutate(&doc)
		if err != nil {
			return nil, err
		}

		doc.AuditLog = append(doc.AuditLog, AuditEntry{
			User:   actorName,
			Date:   r.auditTimestamp(&doc),
			Action: action,
		})

		snapshot := doc.Revision
		doc.Revision++

		res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": oid, "revision": snapshot}, &doc)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return &doc, nil
		}
		// Lost the race: another transition committed first. Loop re-reads
		// the fresh aggregate and re-runs the guard.
	}

	return nil, fmt.Errorf("%w: transição concorrente no documento %s", ErrInvalidState, id)
}

// auditTimestamp keeps audit dates non-decreasing per document even if the
// wall clock steps backwards between transitions.
func (r *DocumentStoreImpl) auditTimestamp(doc *Document) time.Time {
	ts := time.Now()
	if n := len(doc.AuditLog); n > 0 && ts.Before(doc.AuditLog[n-1].Date) {
		return doc.AuditLog[n-1].Date
	}
	return ts
}

func (r *DocumentStoreImpl) ListByClient(ctx context.Context, clientID string) ([]Document, error) {
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	opts := options.Find().SetSort(bson.M{"upload_date": -1})
	cursor, err := r.Collection.Find(ctx, bson.M{"client_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListUpdatedSince returns documents uploaded after the cursor timestamp.
// A nil clientIDs slice means no tenant restriction (office actors).
func (r *DocumentStoreImpl) ListUpdatedSince(ctx context.Context, clientIDs []string, since time.Time) ([]Document, error) {
	query := bson.M{"upload_date": bson.M{"$gt": since}}

	if clientIDs != nil {
		oids := make([]primitive.ObjectID, 0, len(clientIDs))
		for _, id := range clientIDs {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				continue
			}
			oids = append(oids, oid)
		}
		query["client_id"] = bson.M{"$in": oids}
	}

	opts := options.Find().SetSort(bson.M{"upload_date": -1})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
