package model

// ExtractedWebData is the text content of every matched element of an
// assessment webpage, in document order. An empty, non-nil value means the
// page was fetched but nothing matched; nil means no data was obtained.
type ExtractedWebData []string

// Len returns the number of extracted entries.
func (d ExtractedWebData) Len() int {
	return len(d)
}
