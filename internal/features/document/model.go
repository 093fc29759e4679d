package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentStatus is the lifecycle state of a document instance.
type DocumentStatus string

const (
	StatusPendente             DocumentStatus = "Pendente"
	StatusRecebido             DocumentStatus = "Recebido"
	StatusRevisado             DocumentStatus = "Revisado"
	StatusAguardandoAprovacao  DocumentStatus = "AguardandoAprovacao"
	StatusPendenteEtapa2       DocumentStatus = "PendenteEtapa2"
	StatusAguardandoAssinatura DocumentStatus = "AguardandoAssinatura"
	StatusConcluido            DocumentStatus = "Concluido"
)

// Valid reports whether s is one of the enumerated lifecycle statuses.
// Nothing else is ever persisted.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusRecebido, StatusRevisado, StatusAguardandoAprovacao,
		StatusPendenteEtapa2, StatusAguardandoAssinatura, StatusConcluido:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are defined from s.
func (s DocumentStatus) Terminal() bool {
	return s == StatusConcluido
}

type DocumentType string

const (
	TypePDF        DocumentType = "PDF"
	TypeExcel      DocumentType = "Excel"
	TypeXML        DocumentType = "XML"
	TypeOutro      DocumentType = "Outro"
	TypeFormulario DocumentType = "Formulário"
)

type DocumentSource string

const (
	SourceCliente    DocumentSource = "cliente"
	SourceEscritorio DocumentSource = "escritorio"
)

type SignatoryStatus string

const (
	SignatoryPendente SignatoryStatus = "pendente"
	SignatoryAssinado SignatoryStatus = "assinado"
)

// FileAttachment is the document's payload file. Content is base64.
type FileAttachment struct {
	Name     string `bson:"name" json:"name"`
	MimeType string `bson:"mime_type" json:"type"`
	Content  string `bson:"content" json:"content"`
}

// Workflow tracks multi-step template progress. Present only for stepped
// templates; CurrentStep never exceeds TotalSteps.
type Workflow struct {
	CurrentStep int `bson:"current_step" json:"currentStep"`
	TotalSteps  int `bson:"total_steps" json:"totalSteps"`
}

// RequiredSignatory is one roster entry. The roster is fixed at send time;
// only Status mutates afterwards.
type RequiredSignatory struct {
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Name   string             `bson:"name" json:"name"`
	Status SignatoryStatus    `bson:"status" json:"status"`
}

// Signature records one completed signing event.
type Signature struct {
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Date        time.Time          `bson:"date" json:"date"`
	SignatureID string             `bson:"signature_id" json:"signatureId"`
	AuditTrail  map[string]any     `bson:"audit_trail,omitempty" json:"auditTrail,omitempty"`
}

// AuditEntry is one lifecycle log line. Append-only, immutable, ordered by
// timestamp.
type AuditEntry struct {
	User   string    `bson:"user" json:"user"`
	Date   time.Time `bson:"date" json:"date"`
	Action string    `bson:"action" json:"action"`
}

// Document is the aggregate root: the instance plus its owned roster,
// signatures and audit log, always read and written as one unit.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID `bson:"client_id" json:"clientId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        DocumentType       `bson:"type" json:"type"`
	TemplateID  string             `bson:"template_id,omitempty" json:"templateId,omitempty"`
	RequestText string             `bson:"request_text,omitempty" json:"requestText,omitempty"`

	UploadDate time.Time      `bson:"upload_date" json:"uploadDate"`
	UploadedBy string         `bson:"uploaded_by" json:"uploadedBy"`
	Source     DocumentSource `bson:"source" json:"source"`

	Status   DocumentStatus `bson:"status" json:"status"`
	Workflow *Workflow      `bson:"workflow,omitempty" json:"workflow,omitempty"`

	File     *FileAttachment `bson:"file,omitempty" json:"file,omitempty"`
	FormData map[string]any  `bson:"form_data,omitempty" json:"formData,omitempty"`

	RequiredSignatories []RequiredSignatory `bson:"required_signatories" json:"requiredSignatories"`
	Signatures          []Signature         `bson:"signatures" json:"signatures"`
	AuditLog            []AuditEntry        `bson:"audit_log" json:"auditLog"`

	// Revision is bumped on every accepted transition; the store uses it
	// for compare-and-swap so concurrent transitions cannot interleave.
	Revision int64 `bson:"revision" json:"-"`
}

// SignatoryIndex returns the roster index for userID, or -1.
func (d *Document) SignatoryIndex(userID primitive.ObjectID) int {
	for i := range d.RequiredSignatories {
		if d.RequiredSignatories[i].UserID == userID {
			return i
		}
	}
	return -1
}

// AllSigned reports whether every roster entry is assinado. False for an
// empty roster.
func (d *Document) AllSigned() bool {
	if len(d.RequiredSignatories) == 0 {
		return false
	}
	for i := range d.RequiredSignatories {
		if d.RequiredSignatories[i].Status != SignatoryAssinado {
			return false
		}
	}
	return true
}
