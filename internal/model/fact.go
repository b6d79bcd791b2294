package model

// Fact is a geological fact submitted by a geologist
type Fact struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   Timestamp `json:"createdAt"`
	Author      string    `json:"author,omitempty"`
	AuthorRole  string    `json:"authorRole,omitempty"`
}

// WithDefaults fills in the placeholders the dashboard shows for missing fields
func (f Fact) WithDefaults() Fact {
	if f.CreatedBy == "" {
		f.CreatedBy = "Unknown"
	}
	if f.Author == "" {
		f.Author = "Unknown"
	}
	if f.AuthorRole == "" {
		f.AuthorRole = "Geologist"
	}
	return f
}

// Initials returns the author's initials
func (f Fact) Initials() string {
	return initials(f.Author)
}
