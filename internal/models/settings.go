package models

// Settings are the chapter-wide settings visible to staff
type Settings struct {
	ChapterName string `json:"chapter_name"`

	// AccessCode is the shared secret new members register with. Empty
	// means registration is open.
	AccessCode string `json:"access_code"`
}
