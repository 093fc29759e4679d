package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	ActorKey ContextKey = "actor"
)

// UserRole mirrors the portal's three access levels. Both admin roles count
// as "office" actors for document lifecycle purposes.
type UserRole string

const (
	RoleAdminGeral    UserRole = "AdminGeral"
	RoleAdminLimitado UserRole = "AdminLimitado"
	RoleCliente       UserRole = "Cliente"
)

func (r UserRole) IsOffice() bool {
	return r == RoleAdminGeral || r == RoleAdminLimitado
}

// Actor identifies who is performing an operation. Built from JWT claims by
// the auth middleware and passed down through context.
type Actor struct {
	UserID    string
	Name      string
	Role      UserRole
	ClientIDs []string
}

// OwnsClient reports whether the actor may act on documents of the given
// client. Office actors act on any client.
func (a Actor) OwnsClient(clientID string) bool {
	if a.Role.IsOffice() {
		return true
	}
	for _, id := range a.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

type UserPermissions struct {
	CanManageClients   bool `bson:"can_manage_clients" json:"canManageClients"`
	CanManageDocuments bool `bson:"can_manage_documents" json:"canManageDocuments"`
	CanManageAdmins    bool `bson:"can_manage_admins" json:"canManageAdmins"`
	CanManageSettings  bool `bson:"can_manage_settings" json:"canManageSettings"`
	CanViewReports     bool `bson:"can_view_reports" json:"canViewReports"`
	CanViewDashboard   bool `bson:"can_view_dashboard" json:"canViewDashboard"`
}

type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username    string               `bson:"username" json:"username"`
	Password    string               `bson:"password" json:"-"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Role        UserRole             `bson:"role" json:"role"`
	Permissions UserPermissions      `bson:"permissions" json:"permissions"`
	ClientIDs   []primitive.ObjectID `bson:"client_ids" json:"client_ids"`
	LastLogin   *time.Time           `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
