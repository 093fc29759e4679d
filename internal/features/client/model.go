package client

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaxRegime string

const (
	RegimeSimplesNacional TaxRegime = "SimplesNacional"
	RegimeLucroPresumido  TaxRegime = "LucroPresumido"
	RegimeLucroReal       TaxRegime = "LucroReal"
)

type ClientStatus string

const (
	ClientAtivo   ClientStatus = "Ativo"
	ClientInativo ClientStatus = "Inativo"
)

// Client is a company served by the office. Documents are tenant-scoped by
// client id.
type Client struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Company             string             `bson:"company" json:"company"`
	CNPJ                string             `bson:"cnpj,omitempty" json:"cnpj,omitempty"`
	Email               string             `bson:"email" json:"email"`
	Phone               string             `bson:"phone" json:"phone"`
	Status              ClientStatus       `bson:"status" json:"status"`
	TaxRegime           TaxRegime          `bson:"tax_regime" json:"taxRegime"`
	CNAEs               []string           `bson:"cnaes" json:"cnaes"`
	Keywords            []string           `bson:"keywords" json:"keywords"`
	BusinessDescription string             `bson:"business_description" json:"businessDescription"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}
