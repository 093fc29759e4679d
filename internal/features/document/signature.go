package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"jzf-portal/internal/common/models"
	"jzf-portal/internal/features/signing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SignatureMetadata is capture context supplied by the caller (network and
// client identifiers), stored verbatim in the signature's audit trail.
type SignatureMetadata struct {
	AuditTrail map[string]any `json:"auditTrail"`
}

// SignatureCoordinator tracks per-signatory completion against the roster.
// RecordSignature reports nowComplete=true when this signature was the last
// pending one, in which case the document reached Concluido in the same
// write.
type SignatureCoordinator interface {
	RecordSignature(ctx context.Context, actor models.Actor, docID string, meta SignatureMetadata) (doc *Document, nowComplete bool, err error)
}

type SignatureCoordinatorImpl struct {
	Store  DocumentStore
	Signer signing.Primitive
	Sink   EventSink
	Logger *zap.Logger
}

func NewSignatureCoordinator(store DocumentStore, signer signing.Primitive, sink EventSink, logger *zap.Logger) SignatureCoordinator {
	return &SignatureCoordinatorImpl{
		Store:  store,
		Signer: signer,
		Sink:   sink,
		Logger: logger,
	}
}

func (c *SignatureCoordinatorImpl) RecordSignature(ctx context.Context, actor models.Actor, docID string, meta SignatureMetadata) (*Document, bool, error) {
	signerOID, err := primitive.ObjectIDFromHex(actor.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: assinante inválido", ErrInvalidState)
	}

	current, err := c.Store.GetByID(ctx, docID)
	if err != nil {
		return nil, false, err
	}
	if !actor.OwnsClient(current.ClientID.Hex()) {
		return nil, false, fmt.Errorf("%w: documento pertence a outro cliente", ErrForbidden)
	}
	if err := signatureGuard(current, signerOID); err != nil {
		return nil, false, err
	}

	// The signing primitive may be slow, so it runs against the snapshot
	// BEFORE the store transaction. The transition below re-checks the
	// guard; if a concurrent commit invalidated it, nothing is written.
	signedAt := time.Now()
	snapshotContent := ""
	if current.File != nil {
		snapshotContent = current.File.Content
	}
	newContent, err := c.appendSignatureBlock(current, actor.Name, signedAt)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}

	signature := Signature{
		UserID:      signerOID,
		SignatureID: "SIG-" + uuid.NewString(),
		AuditTrail:  meta.AuditTrail,
	}

	nowComplete := false
	updated, err := c.Store.ApplyTransition(ctx, docID, actor.Name, func(doc *Document) (string, error) {
		if err := signatureGuard(doc, signerOID); err != nil {
			return "", err
		}

		// A concurrent signature may have changed the file after the
		// snapshot was taken. Writing the stale-derived bytes would erase
		// that signer's block, so re-derive from the fresh content. No
		// store lock is held here; re-invoking the primitive is safe.
		content := newContent
		if doc.File != nil && doc.File.Content != snapshotContent {
			fresh, err := c.appendSignatureBlock(doc, actor.Name, signedAt)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrDependencyFailure, err)
			}
			content = fresh
		}

		doc.RequiredSignatories[doc.SignatoryIndex(signerOID)].Status = SignatoryAssinado
		signature.Date = signatureTimestamp(doc, signedAt)
		doc.Signatures = append(doc.Signatures, signature)
		if doc.File != nil {
			doc.File.Content = content
			doc.File.MimeType = "application/pdf"
		}

		nowComplete = doc.AllSigned()
		if nowComplete {
			doc.Status = StatusConcluido
		}

		return "Documento assinado digitalmente.", nil
	})
	if err != nil {
		return nil, false, err
	}

	c.emit(ctx, actor, updated)
	return updated, nowComplete, nil
}

// signatureTimestamp keeps signature dates non-decreasing per document, the
// same clamp the store applies to audit dates.
func signatureTimestamp(doc *Document, ts time.Time) time.Time {
	if n := len(doc.Signatures); n > 0 && ts.Before(doc.Signatures[n-1].Date) {
		return doc.Signatures[n-1].Date
	}
	return ts
}

// signatureGuard enforces signer eligibility: the document must be awaiting
// signatures and the signer must be a still-pending roster entry.
func signatureGuard(doc *Document, signer primitive.ObjectID) error {
	if doc.Status != StatusAguardandoAssinatura {
		return fmt.Errorf("%w: documento não aguarda assinatura (status %q)", ErrInvalidState, doc.Status)
	}
	idx := doc.SignatoryIndex(signer)
	if idx < 0 {
		return fmt.Errorf("%w: usuário não consta na lista de signatários", ErrInvalidState)
	}
	if doc.RequiredSignatories[idx].Status == SignatoryAssinado {
		return fmt.Errorf("%w: usuário já assinou este documento", ErrInvalidState)
	}
	return nil
}

func (c *SignatureCoordinatorImpl) appendSignatureBlock(doc *Document, signerName string, ts time.Time) (string, error) {
	if doc.File == nil {
		return "", fmt.Errorf("documento sem arquivo para assinar")
	}
	raw, err := base64.StdEncoding.DecodeString(doc.File.Content)
	if err != nil {
		return "", fmt.Errorf("conteúdo do arquivo inválido: %w", err)
	}

	signed, err := c.Signer.AppendSignatureBlock(raw, signerName, ts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signed), nil
}

func (c *SignatureCoordinatorImpl) emit(ctx context.Context, actor models.Actor, doc *Document) {
	if c.Sink == nil {
		return
	}
	c.Sink.Publish(ctx, LifecycleEvent{
		DocumentID:   doc.ID.Hex(),
		ClientID:     doc.ClientID.Hex(),
		DocumentName: doc.Name,
		OldStatus:    StatusAguardandoAssinatura,
		NewStatus:    doc.Status,
		ActorName:    actor.Name,
		Timestamp:    time.Now(),
	})
	if c.Logger != nil {
		c.Logger.Info("document signed",
			zap.String("documentId", doc.ID.Hex()),
			zap.String("clientId", doc.ClientID.Hex()),
			zap.String("to", string(doc.Status)),
		)
	}
}
