package auth

import "strings"

// Role define los roles que emite el servicio de autenticación.
type Role string

const (
	RoleReceptionist Role = "receptionist"
	RoleStaff        Role = "staff"
	RoleAdmin        Role = "admin"
)

// ParseRole normaliza un rol recibido en claims. Rol desconocido => "".
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleReceptionist:
		return RoleReceptionist
	case RoleStaff:
		return RoleStaff
	case RoleAdmin:
		return RoleAdmin
	default:
		return ""
	}
}

// Identity representa la información extraída del token:
// quién llama, con qué rol y a qué oficina (destino) pertenece.
// HomeDestinationID es nil para usuarios sin oficina asignada.
type Identity struct {
	UserID            string
	DisplayName       string
	Role              Role
	HomeDestinationID *int64
}
