package content

// Section is one content block inside a page.
type Section struct {
	// ID is positional: "." orders siblings, "," nests a child under its parent.
	ID          string         `json:"id"`
	StableID    string         `json:"stableId"`
	Type        string         `json:"type,omitempty"`
	Preset      string         `json:"preset,omitempty"`
	Input       any            `json:"input,omitempty"`
	Props       map[string]any `json:"props,omitempty"`
	Params      map[string]any `json:"params"`
	Data        any            `json:"data,omitempty"`
	Content     *Node          `json:"content"`
	Fetch       *FetchSpec     `json:"fetch,omitempty"`
	Subsections []*Section     `json:"subsections"`
	Insets      []Inset        `json:"insets,omitempty"`
	Hash        string         `json:"hash"`
	Source      string         `json:"source"`
}

// Inset is an inline component reference lifted out of a section body.
type Inset struct {
	RefID     string `json:"refId"`
	Component string `json:"component"`
	Alt       string `json:"alt,omitempty"`
	Title     string `json:"title,omitempty"`
}
