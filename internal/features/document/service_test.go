package document

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jzf-portal/internal/common/models"
	"jzf-portal/internal/features/template"
)

// fakeStore is an in-memory DocumentStore mirroring the real store's
// transition semantics: guard runs inside the write, the audit entry is
// appended in the same write, revision bumps on every accepted transition.
type fakeStore struct {
	docs map[string]*Document
	// beforeApply runs just before a transition's mutator, after the
	// aggregate is loaded. Tests use it to interleave a concurrent write.
	beforeApply func(doc *Document)
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]*Document)}
}

func copyDoc(d *Document) *Document {
	c := *d
	c.RequiredSignatories = append([]RequiredSignatory(nil), d.RequiredSignatories...)
	c.Signatures = append([]Signature(nil), d.Signatures...)
	c.AuditLog = append([]AuditEntry(nil), d.AuditLog...)
	if d.Workflow != nil {
		w := *d.Workflow
		c.Workflow = &w
	}
	if d.File != nil {
		f := *d.File
		c.File = &f
	}
	return &c
}

func (s *fakeStore) Create(ctx context.Context, doc *Document) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now()
	}
	doc.Revision = 1
	s.docs[doc.ID.Hex()] = copyDoc(doc)
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*Document, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return copyDoc(d), nil
}

func (s *fakeStore) ApplyTransition(ctx context.Context, id string, actorName string, mutate Mutator) (*Document, error) {
	stored, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.beforeApply != nil {
		hook := s.beforeApply
		s.beforeApply = nil
		hook(stored)
	}
	working := copyDoc(stored)
	action, err := mutate(working)
	if err != nil {
		return nil, err
	}
	working.AuditLog = append(working.AuditLog, AuditEntry{
		User:   actorName,
		Date:   time.Now(),
		Action: action,
	})
	working.Revision = stored.Revision + 1
	s.docs[id] = copyDoc(working)
	return working, nil
}

func (s *fakeStore) ListByClient(ctx context.Context, clientID string) ([]Document, error) {
	var out []Document
	for _, d := range s.docs {
		if d.ClientID.Hex() == clientID {
			out = append(out, *copyDoc(d))
		}
	}
	return out, nil
}

func (s *fakeStore) ListUpdatedSince(ctx context.Context, clientIDs []string, since time.Time) ([]Document, error) {
	allowed := map[string]bool{}
	for _, id := range clientIDs {
		allowed[id] = true
	}
	var out []Document
	for _, d := range s.docs {
		if !d.UploadDate.After(since) {
			continue
		}
		if clientIDs != nil && !allowed[d.ClientID.Hex()] {
			continue
		}
		out = append(out, *copyDoc(d))
	}
	return out, nil
}

type fakeUserFinder struct {
	users []models.User
}

func (f *fakeUserFinder) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID.Hex() == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type captureSink struct {
	events []LifecycleEvent
}

func (s *captureSink) Publish(ctx context.Context, event LifecycleEvent) {
	s.events = append(s.events, event)
}

func newTestService(store DocumentStore, finder UserFinder, sink EventSink) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		Store:    store,
		Registry: template.NewRegistry(),
		Users:    finder,
		Sink:     sink,
		Logger:   zap.NewNop(),
	}
}

func officeActor() models.Actor {
	return models.Actor{
		UserID: primitive.NewObjectID().Hex(),
		Name:   "Maria Contadora",
		Role:   models.RoleAdminGeral,
	}
}

func clientActor(clientID string) models.Actor {
	return models.Actor{
		UserID:    primitive.NewObjectID().Hex(),
		Name:      "João Cliente",
		Role:      models.RoleCliente,
		ClientIDs: []string{clientID},
	}
}

func TestCreateRequestStartsPendente(t *testing.T) {
	store := newFakeStore()
	sink := &captureSink{}
	svc := newTestService(store, &fakeUserFinder{}, sink)

	clientID := primitive.NewObjectID().Hex()
	actor := clientActor(clientID)

	doc, err := svc.CreateRequest(context.Background(), actor, CreateRequestInput{
		ClientID:    clientID,
		RequestText: "Guia DAS competência 07/2026",
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if doc.Status != StatusPendente {
		t.Errorf("status = %q, want %q", doc.Status, StatusPendente)
	}
	if doc.Source != SourceCliente {
		t.Errorf("source = %q, want %q", doc.Source, SourceCliente)
	}
	if len(doc.AuditLog) != 1 || doc.AuditLog[0].Action != "Documento solicitado/criado." {
		t.Errorf("unexpected audit log: %+v", doc.AuditLog)
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected 1 lifecycle event, got %d", len(sink.events))
	}
	if sink.events[0].NewStatus != StatusPendente {
		t.Errorf("event new status = %q", sink.events[0].NewStatus)
	}
}

func TestCreateRequestForeignClientForbidden(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeUserFinder{}, nil)

	actor := clientActor(primitive.NewObjectID().Hex())
	_, err := svc.CreateRequest(context.Background(), actor, CreateRequestInput{
		ClientID:    primitive.NewObjectID().Hex(),
		RequestText: "Solicitação indevida",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

// Scenario: the office fulfills a client request by sending the file, then
// the client confirms nothing further is needed. Pendente -> Recebido.
func TestSendFromOfficeWithoutRosterIsRecebido(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, err := svc.SendFromOffice(context.Background(), officeActor(), SendFromOfficeInput{
		ClientID:    primitive.NewObjectID().Hex(),
		DocName:     "Balancete Junho",
		FileContent: "JVBERi0xLjQ=",
	})
	if err != nil {
		t.Fatalf("SendFromOffice: %v", err)
	}
	if doc.Status != StatusRecebido {
		t.Errorf("status = %q, want %q", doc.Status, StatusRecebido)
	}
	if len(doc.RequiredSignatories) != 0 {
		t.Errorf("expected empty roster, got %d entries", len(doc.RequiredSignatories))
	}
}

func TestSendFromOfficeWithRosterAwaitsSignatures(t *testing.T) {
	signer := models.User{ID: primitive.NewObjectID(), Name: "Ana Sócia"}
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{users: []models.User{signer}}, &captureSink{})

	doc, err := svc.SendFromOffice(context.Background(), officeActor(), SendFromOfficeInput{
		ClientID:     primitive.NewObjectID().Hex(),
		DocName:      "Contrato Social",
		FileContent:  "JVBERi0xLjQ=",
		SignatoryIDs: []string{signer.ID.Hex()},
	})
	if err != nil {
		t.Fatalf("SendFromOffice: %v", err)
	}
	if doc.Status != StatusAguardandoAssinatura {
		t.Errorf("status = %q, want %q", doc.Status, StatusAguardandoAssinatura)
	}
	if len(doc.RequiredSignatories) != 1 {
		t.Fatalf("roster size = %d, want 1", len(doc.RequiredSignatories))
	}
	if doc.RequiredSignatories[0].Name != "Ana Sócia" {
		t.Errorf("roster name = %q, want denormalized display name", doc.RequiredSignatories[0].Name)
	}
	if doc.RequiredSignatories[0].Status != SignatoryPendente {
		t.Errorf("roster status = %q, want %q", doc.RequiredSignatories[0].Status, SignatoryPendente)
	}
}

func TestSendFromOfficeRequiresOfficeRole(t *testing.T) {
	clientID := primitive.NewObjectID().Hex()
	svc := newTestService(newFakeStore(), &fakeUserFinder{}, nil)

	_, err := svc.SendFromOffice(context.Background(), clientActor(clientID), SendFromOfficeInput{
		ClientID: clientID,
		DocName:  "Tentativa",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestQuickSendIsRecebidoFromClientSource(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, err := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Nota Fiscal 123",
		File:     &FileAttachment{Name: "nf123.pdf", MimeType: "application/pdf", Content: "JVBERi0xLjQ="},
	})
	if err != nil {
		t.Fatalf("QuickSend: %v", err)
	}
	if doc.Status != StatusRecebido {
		t.Errorf("status = %q, want %q", doc.Status, StatusRecebido)
	}
	if doc.Source != SourceCliente {
		t.Errorf("source = %q, want %q", doc.Source, SourceCliente)
	}
	if doc.AuditLog[0].Action != `Documento enviado via "Envio Rápido".` {
		t.Errorf("audit action = %q", doc.AuditLog[0].Action)
	}
}

// Scenario: a stepped template flows through
// AguardandoAprovacao -> PendenteEtapa2 -> Recebido.
func TestSteppedTemplateFullFlow(t *testing.T) {
	store := newFakeStore()
	sink := &captureSink{}
	svc := newTestService(store, &fakeUserFinder{}, sink)

	clientID := primitive.NewObjectID().Hex()
	client := clientActor(clientID)

	doc, err := svc.CreateFromTemplate(context.Background(), client, TemplateSubmissionInput{
		TemplateID: "rescisao-contrato",
		ClientID:   clientID,
		FormData:   map[string]any{"nome_funcionario_rescisao": "Carlos Silva"},
	})
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}
	if doc.Status != StatusAguardandoAprovacao {
		t.Fatalf("status = %q, want %q", doc.Status, StatusAguardandoAprovacao)
	}
	if doc.Workflow == nil || doc.Workflow.CurrentStep != 1 || doc.Workflow.TotalSteps != 2 {
		t.Fatalf("workflow = %+v, want step 1 of 2", doc.Workflow)
	}

	office := officeActor()
	doc, err = svc.ApproveStep(context.Background(), office, doc.ID.Hex())
	if err != nil {
		t.Fatalf("ApproveStep: %v", err)
	}
	if doc.Status != StatusPendenteEtapa2 {
		t.Fatalf("status = %q, want %q", doc.Status, StatusPendenteEtapa2)
	}

	doc, err = svc.SubmitNextStep(context.Background(), client, doc.ID.Hex(), StepSubmissionInput{
		FormData: map[string]any{"data_pagamento": "2026-09-05"},
	})
	if err != nil {
		t.Fatalf("SubmitNextStep: %v", err)
	}
	if doc.Status != StatusRecebido {
		t.Errorf("status = %q, want %q after final step", doc.Status, StatusRecebido)
	}
	if doc.Workflow.CurrentStep != 2 {
		t.Errorf("current step = %d, want 2", doc.Workflow.CurrentStep)
	}
	if doc.FormData["nome_funcionario_rescisao"] != "Carlos Silva" {
		t.Errorf("step 1 form data lost: %+v", doc.FormData)
	}
	if doc.FormData["data_pagamento"] != "2026-09-05" {
		t.Errorf("step 2 form data missing: %+v", doc.FormData)
	}

	// create + approve + submit
	if len(doc.AuditLog) != 3 {
		t.Errorf("audit log length = %d, want 3", len(doc.AuditLog))
	}
	if len(sink.events) != 3 {
		t.Errorf("lifecycle events = %d, want 3", len(sink.events))
	}
}

func TestSingleStepTemplateIsRecebido(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	clientID := primitive.NewObjectID().Hex()
	doc, err := svc.CreateFromTemplate(context.Background(), clientActor(clientID), TemplateSubmissionInput{
		TemplateID: "aviso-ferias",
		ClientID:   clientID,
		FormData:   map[string]any{"nome_funcionario_ferias": "Paula Reis"},
	})
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}
	if doc.Status != StatusRecebido {
		t.Errorf("status = %q, want %q", doc.Status, StatusRecebido)
	}
	if doc.Workflow != nil {
		t.Errorf("expected no workflow, got %+v", doc.Workflow)
	}
}

func TestTemplateFileRequired(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeUserFinder{}, nil)

	clientID := primitive.NewObjectID().Hex()
	_, err := svc.CreateFromTemplate(context.Background(), clientActor(clientID), TemplateSubmissionInput{
		TemplateID: "admissao-funcionario",
		ClientID:   clientID,
		FormData:   map[string]any{"nome_completo": "Pedro Dias"},
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState for missing required file", err)
	}
}

func TestUnknownTemplateRejected(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeUserFinder{}, nil)

	clientID := primitive.NewObjectID().Hex()
	_, err := svc.CreateFromTemplate(context.Background(), clientActor(clientID), TemplateSubmissionInput{
		TemplateID: "modelo-inexistente",
		ClientID:   clientID,
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestSubmitNextStepGuardRejectsWrongStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	clientID := primitive.NewObjectID().Hex()
	client := clientActor(clientID)

	doc, err := svc.CreateFromTemplate(context.Background(), client, TemplateSubmissionInput{
		TemplateID: "rescisao-contrato",
		ClientID:   clientID,
	})
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}

	// Still AguardandoAprovacao; step 2 is not open yet.
	_, err = svc.SubmitNextStep(context.Background(), client, doc.ID.Hex(), StepSubmissionInput{})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}

	stored, _ := store.GetByID(context.Background(), doc.ID.Hex())
	if len(stored.AuditLog) != 1 {
		t.Errorf("rejected transition must not append audit entries, log length = %d", len(stored.AuditLog))
	}
	if stored.Revision != 1 {
		t.Errorf("rejected transition must not bump revision, got %d", stored.Revision)
	}
}

func TestApproveStepGuard(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, err := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Sem workflow",
	})
	if err != nil {
		t.Fatalf("QuickSend: %v", err)
	}

	_, err = svc.ApproveStep(context.Background(), officeActor(), doc.ID.Hex())
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState for non-approvable status", err)
	}
}

func TestSetStatusPermissiveOverride(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, err := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Holerite",
	})
	if err != nil {
		t.Fatalf("QuickSend: %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), officeActor(), doc.ID.Hex(), StatusRevisado)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != StatusRevisado {
		t.Errorf("status = %q, want %q", updated.Status, StatusRevisado)
	}
	last := updated.AuditLog[len(updated.AuditLog)-1]
	if last.Action != `Status alterado para "Revisado".` {
		t.Errorf("audit action = %q", last.Action)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, _ := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Doc",
	})

	_, err := svc.SetStatus(context.Background(), officeActor(), doc.ID.Hex(), DocumentStatus("EmAnalise"))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestSetStatusProtectsTerminalState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, _ := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Doc",
	})
	if _, err := svc.SetStatus(context.Background(), officeActor(), doc.ID.Hex(), StatusConcluido); err != nil {
		t.Fatalf("SetStatus to Concluido: %v", err)
	}

	_, err := svc.SetStatus(context.Background(), officeActor(), doc.ID.Hex(), StatusPendente)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState for terminal document", err)
	}
}

func TestGetByIDOwnershipCheck(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	doc, _ := svc.QuickSend(context.Background(), officeActor(), QuickSendInput{
		ClientID: primitive.NewObjectID().Hex(),
		Name:     "Doc alheio",
	})

	outsider := clientActor(primitive.NewObjectID().Hex())
	_, err := svc.GetByID(context.Background(), outsider, doc.ID.Hex())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	_, err = svc.GetByID(context.Background(), officeActor(), doc.ID.Hex())
	if err != nil {
		t.Fatalf("office read: %v", err)
	}
}

func TestGetByIDUnknownDocument(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeUserFinder{}, nil)

	_, err := svc.GetByID(context.Background(), officeActor(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListUpdatedSinceScopesClients(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeUserFinder{}, &captureSink{})

	ownClient := primitive.NewObjectID().Hex()
	otherClient := primitive.NewObjectID().Hex()
	office := officeActor()

	svc.QuickSend(context.Background(), office, QuickSendInput{ClientID: ownClient, Name: "Meu doc"})
	svc.QuickSend(context.Background(), office, QuickSendInput{ClientID: otherClient, Name: "Doc de outro"})

	since := time.Now().Add(-time.Hour)

	mine, err := svc.ListUpdatedSince(context.Background(), clientActor(ownClient), since)
	if err != nil {
		t.Fatalf("ListUpdatedSince: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Meu doc" {
		t.Errorf("client sees %d docs, want only its own", len(mine))
	}

	all, err := svc.ListUpdatedSince(context.Background(), office, since)
	if err != nil {
		t.Fatalf("ListUpdatedSince office: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("office sees %d docs, want 2", len(all))
	}
}
