package entity

// SearchCriteria narrows a note search. An empty FolderIds set means all
// folders.
type SearchCriteria struct {
	Term           string
	FolderIds      []FolderId
	IncludeTitle   bool
	IncludeContent bool
	CaseSensitive  bool
}

// NewSearchCriteria builds criteria matching the term against both title and
// content, case-insensitively.
func NewSearchCriteria(term string) SearchCriteria {
	return SearchCriteria{
		Term:           term,
		IncludeTitle:   true,
		IncludeContent: true,
	}
}
