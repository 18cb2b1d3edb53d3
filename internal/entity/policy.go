package entity

// DeletePolicy selects what happens to a folder's contents when the folder
// is deleted.
type DeletePolicy string

const (
	// CascadeDelete removes the folder together with every descendant
	// folder, note and attachment.
	CascadeDelete DeletePolicy = "cascade"
	// RejectIfNonEmpty refuses to delete a folder that still has child
	// folders or notes.
	RejectIfNonEmpty DeletePolicy = "reject-if-non-empty"
)
