package constant

import (
	"path/filepath"
	"strings"
)

const (
	AppName    = "Pink-Note"
	AppVersion = "1.0.0"

	DefaultDatabaseFileName = "notepad.db"
	DefaultFolderName       = "Geral"

	WelcomeNoteTitle   = "Bem-vindo ao NotePad"
	WelcomeNoteContent = "Bem-vindo ao seu novo aplicativo de notas! Este é um exemplo de nota."

	DataChangedTopicName = "pinknote.data-changed"
)

const (
	FileKindImage        = "image"
	FileKindDocument     = "document"
	FileKindSpreadsheet  = "spreadsheet"
	FileKindPresentation = "presentation"
	FileKindOther        = "other"
)

var (
	ImageExtensions        = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}
	DocumentExtensions     = []string{".pdf", ".doc", ".docx", ".txt", ".rtf"}
	SpreadsheetExtensions  = []string{".xls", ".xlsx", ".csv"}
	PresentationExtensions = []string{".ppt", ".pptx"}
)

// FileKindForName groups a file name by its extension into one of the
// FileKind categories.
func FileKindForName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case containsExtension(ImageExtensions, ext):
		return FileKindImage
	case containsExtension(DocumentExtensions, ext):
		return FileKindDocument
	case containsExtension(SpreadsheetExtensions, ext):
		return FileKindSpreadsheet
	case containsExtension(PresentationExtensions, ext):
		return FileKindPresentation
	default:
		return FileKindOther
	}
}

func containsExtension(list []string, ext string) bool {
	for _, e := range list {
		if e == ext {
			return true
		}
	}
	return false
}
