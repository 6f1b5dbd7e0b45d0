package types

// DocumentsResponse is the root of a Federal Register documents.json response.
type DocumentsResponse struct {
	Count      int        `json:"count"`
	TotalPages int        `json:"total_pages"`
	Results    []Document `json:"results"`
}

// Document is one Federal Register document restricted to the fields we request.
type Document struct {
	Title           string         `json:"title"`
	Abstract        string         `json:"abstract"`
	PublicationDate string         `json:"publication_date"`
	DocumentNumber  string         `json:"document_number"`
	Agencies        []Agency       `json:"agencies"`
	FullTextXMLURL  string         `json:"full_text_xml_url"`
	HTMLURL         string         `json:"html_url"`
	CFRReferences   []CFRReference `json:"cfr_references"`
}

type Agency struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ID       int    `json:"id"`
	ParentID int    `json:"parent_id,omitempty"`
}

type CFRReference struct {
	Title   int    `json:"title"`
	Part    int    `json:"part"`
	Chapter string `json:"chapter,omitempty"`
}

// AgencyNames returns the display names of the issuing agencies.
func (d Document) AgencyNames() []string {
	names := make([]string, 0, len(d.Agencies))
	for _, a := range d.Agencies {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}
