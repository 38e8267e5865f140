package domain

// DefaultMaintenanceMessage is shown when the operator left the message empty.
const DefaultMaintenanceMessage = "System is under maintenance. Please try again later."

// MaintenanceState mirrors GET /maintenance. It is never persisted client side.
type MaintenanceState struct {
	IsMaintenance bool   `json:"is_maintenance"`
	Message       string `json:"message"`
}

// Blocks reports whether the state must replace a protected view for id.
// Admins are never blocked.
func (m MaintenanceState) Blocks(id *Identity) bool {
	return m.IsMaintenance && !id.IsAdmin()
}

// Notice returns the operator message, falling back to the default text.
func (m MaintenanceState) Notice() string {
	if m.Message == "" {
		return DefaultMaintenanceMessage
	}
	return m.Message
}
