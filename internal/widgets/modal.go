package widgets

// Target is the part of a modal that received a click
type Target int

const (
	TargetContent Target = iota
	TargetBackdrop
	TargetCloseButton
)

// Modal is an open/closed dialog. Clicking the backdrop dismisses it.
type Modal struct {
	title string
	open  bool
}

func (m *Modal) Open(title string) {
	m.title = title
	m.open = true
}

func (m *Modal) Close() {
	m.open = false
}

func (m *Modal) IsOpen() bool {
	return m.open
}

func (m *Modal) Title() string {
	return m.title
}

// Click handles a click on target and reports whether the modal closed
func (m *Modal) Click(target Target) bool {
	if !m.open {
		return false
	}
	switch target {
	case TargetBackdrop, TargetCloseButton:
		m.open = false
		return true
	}
	return false
}
