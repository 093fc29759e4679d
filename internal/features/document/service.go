package document

import (
	"context"
	"fmt"
	"time"

	"jzf-portal/internal/common/models"
	"jzf-portal/internal/features/template"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserFinder resolves signatory user ids to users so their display names can
// be denormalized into the roster at send time.
type UserFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

type CreateRequestInput struct {
	ClientID    string `json:"clientId"`
	RequestText string `json:"requestText"`
	Description string `json:"description"`
}

type SendFromOfficeInput struct {
	ClientID     string   `json:"clientId"`
	DocName      string   `json:"docName"`
	FileContent  string   `json:"fileContent"`
	SignatoryIDs []string `json:"signatoryIds"`
}

type QuickSendInput struct {
	ClientID    string          `json:"clientId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	File        *FileAttachment `json:"file"`
}

type TemplateSubmissionInput struct {
	TemplateID string          `json:"templateId"`
	ClientID   string          `json:"clientId"`
	FormData   map[string]any  `json:"formData"`
	File       *FileAttachment `json:"file"`
}

type StepSubmissionInput struct {
	FormData map[string]any  `json:"formData"`
	File     *FileAttachment `json:"file"`
}

// DocumentService is the lifecycle engine: it validates and applies state
// transitions, enforces actor eligibility, advances multi-step workflows and
// emits one lifecycle event per accepted transition. Every write returns the
// full updated aggregate so callers can render without a second fetch.
type DocumentService interface {
	CreateRequest(ctx context.Context, actor models.Actor, input CreateRequestInput) (*Document, error)
	SendFromOffice(ctx context.Context, actor models.Actor, input SendFromOfficeInput) (*Document, error)
	QuickSend(ctx context.Context, actor models.Actor, input QuickSendInput) (*Document, error)
	CreateFromTemplate(ctx context.Context, actor models.Actor, input TemplateSubmissionInput) (*Document, error)
	SubmitNextStep(ctx context.Context, actor models.Actor, docID string, input StepSubmissionInput) (*Document, error)
	ApproveStep(ctx context.Context, actor models.Actor, docID string) (*Document, error)
	SetStatus(ctx context.Context, actor models.Actor, docID string, status DocumentStatus) (*Document, error)

	GetByID(ctx context.Context, actor models.Actor, docID string) (*Document, error)
	ListByClient(ctx context.Context, actor models.Actor, clientID string) ([]Document, error)
	ListUpdatedSince(ctx context.Context, actor models.Actor, since time.Time) ([]Document, error)
}

type DocumentServiceImpl struct {
	Store    DocumentStore
	Registry template.Registry
	Users    UserFinder
	Sink     EventSink
	Logger   *zap.Logger
}

func NewDocumentService(store DocumentStore, registry template.Registry, users UserFinder, sink EventSink, logger *zap.Logger) DocumentService {
	return &DocumentServiceImpl{
		Store:    store,
		Registry: registry,
		Users:    users,
		Sink:     sink,
		Logger:   logger,
	}
}

type lifecycleAction string

const (
	actionCreate    lifecycleAction = "create"
	actionSend      lifecycleAction = "send"
	actionSubmit    lifecycleAction = "submit"
	actionApprove   lifecycleAction = "approve"
	actionSetStatus lifecycleAction = "set_status"
	actionRead      lifecycleAction = "read"
)

// authorize is the single capability check invoked at the top of every
// lifecycle operation. clientID is the owning client of the document being
// acted on (or the target client for creation).
func (s *DocumentServiceImpl) authorize(actor models.Actor, act lifecycleAction, clientID string) error {
	switch act {
	case actionSend, actionApprove, actionSetStatus:
		if !actor.Role.IsOffice() {
			return fmt.Errorf("%w: operação restrita ao escritório", ErrForbidden)
		}
		return nil
	case actionCreate, actionSubmit, actionRead:
		if !actor.OwnsClient(clientID) {
			return fmt.Errorf("%w: documento pertence a outro cliente", ErrForbidden)
		}
		return nil
	}
	return fmt.Errorf("%w: ação desconhecida", ErrForbidden)
}

func (s *DocumentServiceImpl) CreateRequest(ctx context.Context, actor models.Actor, input CreateRequestInput) (*Document, error) {
	if err := s.authorize(actor, actionCreate, input.ClientID); err != nil {
		return nil, err
	}

	clientOID, err := primitive.ObjectIDFromHex(input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente inválido", ErrInvalidState)
	}

	source := SourceCliente
	if actor.Role.IsOffice() {
		source = SourceEscritorio
	}

	doc := &Document{
		ClientID:    clientOID,
		Name:        input.RequestText,
		Description: input.Description,
		Type:        TypeOutro,
		RequestText: input.RequestText,
		UploadedBy:  actor.Name,
		Source:      source,
		Status:      StatusPendente,
		AuditLog: []AuditEntry{
			{User: actor.Name, Date: time.Now(), Action: "Documento solicitado/criado."},
		},
	}

	if err := s.Store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.emit(ctx, actor, doc, "")
	return doc, nil
}

func (s *DocumentServiceImpl) SendFromOffice(ctx context.Context, actor models.Actor, input SendFromOfficeInput) (*Document, error) {
	if err := s.authorize(actor, actionSend, input.ClientID); err != nil {
		return nil, err
	}

	clientOID, err := primitive.ObjectIDFromHex(input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente inválido", ErrInvalidState)
	}

	// The roster is fixed here, at send time. Entries are denormalized with
	// the user's display name and never added or removed afterwards.
	var roster []RequiredSignatory
	if len(input.SignatoryIDs) > 0 {
		users, err := s.Users.FindByIDs(ctx, input.SignatoryIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			roster = append(roster, RequiredSignatory{
				UserID: u.ID,
				Name:   u.Name,
				Status: SignatoryPendente,
			})
		}
	}

	status := StatusRecebido
	if len(roster) > 0 {
		status = StatusAguardandoAssinatura
	}

	doc := &Document{
		ClientID:   clientOID,
		Name:       input.DocName,
		Type:       TypePDF,
		UploadedBy: actor.Name,
		Source:     SourceEscritorio,
		Status:     status,
		File: &FileAttachment{
			Name:     input.DocName + ".pdf",
			MimeType: "application/pdf",
			Content:  input.FileContent,
		},
		RequiredSignatories: roster,
		AuditLog: []AuditEntry{
			{User: actor.Name, Date: time.Now(), Action: "Documento enviado pelo escritório."},
		},
	}

	if err := s.Store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.emit(ctx, actor, doc, "")
	return doc, nil
}

func (s *DocumentServiceImpl) QuickSend(ctx context.Context, actor models.Actor, input QuickSendInput) (*Document, error) {
	if err := s.authorize(actor, actionSend, input.ClientID); err != nil {
		return nil, err
	}

	clientOID, err := primitive.ObjectIDFromHex(input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente inválido", ErrInvalidState)
	}

	doc := &Document{
		ClientID:    clientOID,
		Name:        input.Name,
		Description: input.Description,
		Type:        TypePDF,
		UploadedBy:  actor.Name,
		Source:      SourceCliente,
		Status:      StatusRecebido,
		File:        input.File,
		AuditLog: []AuditEntry{
			{User: actor.Name, Date: time.Now(), Action: `Documento enviado via "Envio Rápido".`},
		},
	}

	if err := s.Store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.emit(ctx, actor, doc, "")
	return doc, nil
}

func (s *DocumentServiceImpl) CreateFromTemplate(ctx context.Context, actor models.Actor, input TemplateSubmissionInput) (*Document, error) {
	if err := s.authorize(actor, actionCreate, input.ClientID); err != nil {
		return nil, err
	}

	tpl := s.Registry.Get(input.TemplateID)
	if tpl == nil {
		return nil, fmt.Errorf("%w: modelo desconhecido %q", ErrInvalidState, input.TemplateID)
	}

	clientOID, err := primitive.ObjectIDFromHex(input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente inválido", ErrInvalidState)
	}

	if tpl.FileConfig != nil && tpl.FileConfig.IsRequired && tpl.TotalSteps() == 0 && input.File == nil {
		return nil, fmt.Errorf("%w: o modelo %q exige um arquivo anexo", ErrInvalidState, tpl.Name)
	}

	status := StatusRecebido
	var workflow *Workflow
	auditAction := fmt.Sprintf("Documento %q enviado pelo cliente.", tpl.Name)

	if tpl.TotalSteps() > 0 {
		status = StatusAguardandoAprovacao
		workflow = &Workflow{CurrentStep: 1, TotalSteps: tpl.TotalSteps()}
		auditAction = fmt.Sprintf("Etapa 1 do documento %q enviada pelo cliente.", tpl.Name)
	}

	doc := &Document{
		ClientID:   clientOID,
		Name:       tpl.Name,
		Type:       TypeFormulario,
		TemplateID: tpl.ID,
		UploadedBy: actor.Name,
		Source:     SourceCliente,
		Status:     status,
		Workflow:   workflow,
		FormData:   input.FormData,
		File:       input.File,
		AuditLog: []AuditEntry{
			{User: actor.Name, Date: time.Now(), Action: auditAction},
		},
	}

	if err := s.Store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.emit(ctx, actor, doc, "")
	return doc, nil
}

func (s *DocumentServiceImpl) SubmitNextStep(ctx context.Context, actor models.Actor, docID string, input StepSubmissionInput) (*Document, error) {
	current, err := s.Store.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, actionSubmit, current.ClientID.Hex()); err != nil {
		return nil, err
	}

	oldStatus := current.Status

	updated, err := s.Store.ApplyTransition(ctx, docID, actor.Name, func(doc *Document) (string, error) {
		if doc.Workflow == nil {
			return "", fmt.Errorf("%w: documento sem etapas", ErrInvalidState)
		}
		if doc.Status != StatusPendenteEtapa2 {
			return "", fmt.Errorf("%w: aguardava %q, atual %q", ErrInvalidState, StatusPendenteEtapa2, doc.Status)
		}

		if doc.FormData == nil {
			doc.FormData = map[string]any{}
		}
		for k, v := range input.FormData {
			doc.FormData[k] = v
		}
		if input.File != nil {
			doc.File = input.File
		}

		doc.Workflow.CurrentStep++
		if doc.Workflow.CurrentStep >= doc.Workflow.TotalSteps {
			doc.Workflow.CurrentStep = doc.Workflow.TotalSteps
			doc.Status = StatusRecebido
		}

		return fmt.Sprintf("Etapa %d do documento %q enviada.", doc.Workflow.CurrentStep, doc.Name), nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, actor, updated, oldStatus)
	return updated, nil
}

func (s *DocumentServiceImpl) ApproveStep(ctx context.Context, actor models.Actor, docID string) (*Document, error) {
	if err := s.authorize(actor, actionApprove, ""); err != nil {
		return nil, err
	}

	updated, err := s.Store.ApplyTransition(ctx, docID, actor.Name, func(doc *Document) (string, error) {
		if doc.Status != StatusAguardandoAprovacao {
			return "", fmt.Errorf("%w: aguardava %q, atual %q", ErrInvalidState, StatusAguardandoAprovacao, doc.Status)
		}
		doc.Status = StatusPendenteEtapa2
		return "Etapa 1 aprovada.", nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, actor, updated, StatusAguardandoAprovacao)
	return updated, nil
}

// SetStatus is the office's manual override: any enumerated status may be
// set from any non-terminal state. Deliberately permissive, always audited.
func (s *DocumentServiceImpl) SetStatus(ctx context.Context, actor models.Actor, docID string, status DocumentStatus) (*Document, error) {
	if err := s.authorize(actor, actionSetStatus, ""); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: status desconhecido %q", ErrInvalidState, status)
	}

	var oldStatus DocumentStatus
	updated, err := s.Store.ApplyTransition(ctx, docID, actor.Name, func(doc *Document) (string, error) {
		if doc.Status.Terminal() {
			return "", fmt.Errorf("%w: documento já concluído", ErrInvalidState)
		}
		oldStatus = doc.Status
		doc.Status = status
		return fmt.Sprintf("Status alterado para %q.", status), nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, actor, updated, oldStatus)
	return updated, nil
}

func (s *DocumentServiceImpl) GetByID(ctx context.Context, actor models.Actor, docID string) (*Document, error) {
	doc, err := s.Store.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, actionRead, doc.ClientID.Hex()); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentServiceImpl) ListByClient(ctx context.Context, actor models.Actor, clientID string) ([]Document, error) {
	if err := s.authorize(actor, actionRead, clientID); err != nil {
		return nil, err
	}
	return s.Store.ListByClient(ctx, clientID)
}

// ListUpdatedSince is the incremental sync read: documents uploaded after
// the cursor, restricted to the actor's own clients unless office.
func (s *DocumentServiceImpl) ListUpdatedSince(ctx context.Context, actor models.Actor, since time.Time) ([]Document, error) {
	var clientIDs []string
	if !actor.Role.IsOffice() {
		clientIDs = actor.ClientIDs
		if clientIDs == nil {
			clientIDs = []string{}
		}
	}
	return s.Store.ListUpdatedSince(ctx, clientIDs, since)
}

// emit publishes the lifecycle event after the commit. Sink failures are the
// sink's problem: they never affect the transition.
func (s *DocumentServiceImpl) emit(ctx context.Context, actor models.Actor, doc *Document, oldStatus DocumentStatus) {
	if s.Sink == nil {
		return
	}
	s.Sink.Publish(ctx, LifecycleEvent{
		DocumentID:   doc.ID.Hex(),
		ClientID:     doc.ClientID.Hex(),
		DocumentName: doc.Name,
		OldStatus:    oldStatus,
		NewStatus:    doc.Status,
		ActorName:    actor.Name,
		Timestamp:    time.Now(),
	})
	if s.Logger != nil {
		s.Logger.Info("document transition",
			zap.String("documentId", doc.ID.Hex()),
			zap.String("clientId", doc.ClientID.Hex()),
			zap.String("from", string(oldStatus)),
			zap.String("to", string(doc.Status)),
		)
	}
}
