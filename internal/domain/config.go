package domain

// Hash field names shared by the pages and members indexes.
const (
	FieldContent    = "__content"
	FieldTitle      = "title"
	FieldURL        = "url"
	FieldType       = "type"
	FieldSource     = "source"
	FieldLocale     = "locale"
	FieldCategory   = "category"
	FieldCategoryID = "category_id"
	FieldName       = "name"
	FieldPublished  = "published"
)

// DefaultExternalType marks index hits that were crawled from an external site.
const DefaultExternalType = "ingeniux.search.htmlsitesource"

// IndexLayout names the FT indexes and key prefixes the service reads.
type IndexLayout struct {
	PagesIndex       string
	PagesPrefix      string
	MembersIndex     string
	MembersPrefix    string
	PageConfigPrefix string
}

// DefaultIndexLayout returns the layout used when config leaves names empty.
func DefaultIndexLayout() IndexLayout {
	return IndexLayout{
		PagesIndex:       "sitesearch:pages:idx",
		PagesPrefix:      "sitesearch:page:",
		MembersIndex:     "sitesearch:members:idx",
		MembersPrefix:    "sitesearch:member:",
		PageConfigPrefix: "sitesearch:pagecfg:",
	}
}
