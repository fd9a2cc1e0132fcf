package document

// Document is a parsed source file split into ordered chapters.
type Document struct {
	Title    string
	Chapters []Chapter
}

// Chapter is a titled, contiguous block of source text. Page is the source
// page the chapter starts on (0 when the format has no pages).
type Chapter struct {
	Title string
	Text  string
	Page  int
}
