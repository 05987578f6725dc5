package sierramodule

const (
	Title   = "sierra-module"
	Version = "0.1.0"
)

// BibResultSet represents a page of bib records returned by GET /bibs/
type BibResultSet struct {
	Total   int   `json:"total"`
	Start   int   `json:"start,omitempty"`
	Entries []Bib `json:"entries"`
}

// ItemResultSet represents a page of item records returned by GET /items/
type ItemResultSet struct {
	Total   int    `json:"total"`
	Start   int    `json:"start,omitempty"`
	Entries []Item `json:"entries"`
}

// SearchResultSet represents the result of GET /bibs/search
type SearchResultSet struct {
	Count   int            `json:"count"`
	Total   int            `json:"total"`
	Start   int            `json:"start"`
	Entries []SearchResult `json:"entries"`
}

// SearchResult is a single ranked search hit
type SearchResult struct {
	Relevance float64 `json:"relevance"`
	Bib       Bib     `json:"bib"`
}

// Bib represents a Sierra bibliographic record. Only requested fields are populated.
type Bib struct {
	ID           string         `json:"id"`
	UpdatedDate  string         `json:"updatedDate,omitempty"`
	CreatedDate  string         `json:"createdDate,omitempty"`
	DeletedDate  string         `json:"deletedDate,omitempty"`
	Deleted      bool           `json:"deleted,omitempty"`
	Suppressed   bool           `json:"suppressed,omitempty"`
	Available    bool           `json:"available,omitempty"`
	Lang         *CodeName      `json:"lang,omitempty"`
	Title        string         `json:"title,omitempty"`
	Author       string         `json:"author,omitempty"`
	MaterialType *CodeValue     `json:"materialType,omitempty"`
	BibLevel     *CodeValue     `json:"bibLevel,omitempty"`
	PublishYear  int            `json:"publishYear,omitempty"`
	CatalogDate  string         `json:"catalogDate,omitempty"`
	Country      *CodeName      `json:"country,omitempty"`
	NormTitle    string         `json:"normTitle,omitempty"`
	NormAuthor   string         `json:"normAuthor,omitempty"`
	Locations    []CodeName     `json:"locations,omitempty"`
	FixedFields  map[string]any `json:"fixedFields,omitempty"`
	VarFields    []VarField     `json:"varFields,omitempty"`
}

// Item represents a Sierra item record
type Item struct {
	ID          string         `json:"id"`
	UpdatedDate string         `json:"updatedDate,omitempty"`
	CreatedDate string         `json:"createdDate,omitempty"`
	Deleted     bool           `json:"deleted,omitempty"`
	Suppressed  bool           `json:"suppressed,omitempty"`
	BibIDs      []string       `json:"bibIds,omitempty"`
	Location    *CodeName      `json:"location,omitempty"`
	Status      *ItemStatus    `json:"status,omitempty"`
	Barcode     string         `json:"barcode,omitempty"`
	CallNumber  string         `json:"callNumber,omitempty"`
	ItemType    string         `json:"itemType,omitempty"`
	FixedFields map[string]any `json:"fixedFields,omitempty"`
	VarFields   []VarField     `json:"varFields,omitempty"`
}

// ItemStatus is the circulation status of an item
type ItemStatus struct {
	Code    string `json:"code"`
	Display string `json:"display"`
	DueDate string `json:"duedate,omitempty"`
}

// CodeName is Sierra's common {code, name} pair
type CodeName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CodeValue is Sierra's common {code, value} pair
type CodeValue struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// VarField represents a MARC variable-length field
type VarField struct {
	FieldTag  string     `json:"fieldTag"`
	MarcTag   string     `json:"marcTag,omitempty"`
	Ind1      string     `json:"ind1,omitempty"`
	Ind2      string     `json:"ind2,omitempty"`
	Content   string     `json:"content,omitempty"`
	Subfields []Subfield `json:"subfields,omitempty"`
}

// Subfield represents a MARC subfield
type Subfield struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// TokenInfo represents the response of GET /info/token
type TokenInfo struct {
	KeyID               string `json:"keyId"`
	GrantType           string `json:"grantType"`
	AuthorizationScheme string `json:"authorizationScheme"`
	ExpiresIn           int    `json:"expiresIn"`
	Roles               []Role `json:"roles,omitempty"`
}

// Role is a permission granted to an API key
type Role struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

// ErrorBody is the JSON body Sierra returns with 4xx/5xx responses
type ErrorBody struct {
	Code         int    `json:"code"`
	SpecificCode int    `json:"specificCode"`
	HTTPStatus   int    `json:"httpStatus"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}
