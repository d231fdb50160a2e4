package components

// ModalClosedMsg is sent when the modal is dismissed.
type ModalClosedMsg struct {
	// Confirmed is true when the OK button closed the modal.
	Confirmed bool
}
