package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // стабилен для пути: повторный Add заменяет содержимое
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileDecoded // перекодирован из однобайтовой кодировки (cp866 и т.п.)
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
	Version uint32 // сколько раз путь перезаписывался
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Len returns the content length as an offset.
func (f *File) Len() uint32 {
	return safeLen(len(f.Content))
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}
