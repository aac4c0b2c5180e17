// Package notify is the single-slot notification surface of the checkout.
// The flow and the validators are its only producers; it carries no business
// logic of its own.
package notify

import "sync"

// Notice is what the storefront renders as a blocking modal.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Modal holds at most one notice. Show replaces whatever is currently
// displayed: last writer wins, there is no queue.
type Modal struct {
	mu      sync.Mutex
	current Notice
}

func NewModal() *Modal {
	return &Modal{}
}

// Show replaces the current notice.
func (m *Modal) Show(title, message string) {
	m.mu.Lock()
	m.current = Notice{Title: title, Message: message, Visible: true}
	m.mu.Unlock()
}

// Dismiss clears the slot.
func (m *Modal) Dismiss() {
	m.mu.Lock()
	m.current = Notice{}
	m.mu.Unlock()
}

// Current returns a snapshot of the slot.
func (m *Modal) Current() Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}
