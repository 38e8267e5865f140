package service

import (
	"sync"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// MaintenanceSwitch holds the server-side maintenance flag.
type MaintenanceSwitch struct {
	mu    sync.RWMutex
	state domain.MaintenanceState
}

func NewMaintenanceSwitch() *MaintenanceSwitch {
	return &MaintenanceSwitch{}
}

func (m *MaintenanceSwitch) State() domain.MaintenanceState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Set enables maintenance with message, falling back to the default text, or
// disables it and drops the message.
func (m *MaintenanceSwitch) Set(enabled bool, message string) domain.MaintenanceState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		if message == "" {
			message = domain.DefaultMaintenanceMessage
		}
		m.state = domain.MaintenanceState{IsMaintenance: true, Message: message}
	} else {
		m.state = domain.MaintenanceState{}
	}
	return m.state
}
