package xmlutils

// Locations inside a .docx package (Office Open XML, WordprocessingML).
const (
	// DocxMainPart is the package part holding the document body.
	DocxMainPart = "word/document.xml"
)

// DocxBodyPath locates the body of the main document part. xmlpath matches
// unprefixed steps by local name, so it works regardless of the w: namespace
// binding.
const DocxBodyPath = "/document/body"
