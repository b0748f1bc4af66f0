package handlers

const (
	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 1 << 20
	// maxImportBytes caps word list imports.
	maxImportBytes = 4 << 20

	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidID           = "Invalid ID"
	ErrInternalServerError = "Internal server error"
)
