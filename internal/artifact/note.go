package artifact

import "github.com/mithrel/dragkit/internal/filename"

// NoteBody is the Markdown file contents for a note: a level one heading
// with the raw title, a blank line and the converted content.
func (m *Materializer) NoteBody(title, content string) []byte {
	return []byte("# " + title + "\n\n" + m.conv.ToMarkdown(content))
}

// CreateNoteFile converts content to Markdown and writes it named after title.
func (m *Materializer) CreateNoteFile(title, content string) (Result, error) {
	return m.write(KindNote, filename.For(title, "md"), m.NoteBody(title, content))
}
