package visits

import "front-desk/internal/ports/auth"

// CanReceive es el predicado único de autorización del motor de rutas:
// - admin: puede actuar sobre cualquier destino.
// - staff: solo sobre visitas cuyo destino actual sea su propia oficina.
// - receptionist (o identidad sin rol): nunca.
// Una visita sin destino actual (sigue en recepción o ya completada sin
// destino) solo la puede operar un admin.
func CanReceive(id auth.Identity, v Visit) bool {
	switch id.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleStaff:
		if id.HomeDestinationID == nil || v.CurrentDestinationID == nil {
			return false
		}
		return *id.HomeDestinationID == *v.CurrentDestinationID
	default:
		return false
	}
}
