package notify

import "testing"

func TestModalLastWriterWins(t *testing.T) {
	m := NewModal()
	m.Show("Erreur", "première")
	m.Show("Information", "seconde")

	got := m.Current()
	if !got.Visible {
		t.Fatalf("expected notice to be visible")
	}
	if got.Title != "Information" || got.Message != "seconde" {
		t.Fatalf("expected the later notice to replace the earlier one, got %+v", got)
	}
}

func TestModalDismiss(t *testing.T) {
	m := NewModal()
	m.Show("Erreur", "oops")
	m.Dismiss()

	got := m.Current()
	if got.Visible || got.Title != "" || got.Message != "" {
		t.Fatalf("expected empty slot after dismiss, got %+v", got)
	}
}

func TestModalEmptyByDefault(t *testing.T) {
	m := NewModal()
	if got := m.Current(); got.Visible {
		t.Fatalf("expected no visible notice on a fresh modal, got %+v", got)
	}
}
